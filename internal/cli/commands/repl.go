package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/paws/internal/cli/output"
	"github.com/leapstack-labs/paws/pkg/parser"
	"github.com/spf13/cobra"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive cPaws shell",
		Long: `Read cPaws source a line at a time and print the tree of each entry.

Entries are numbered and named <repl:N> in diagnostics. An entry that
leaves a group or quoted symbol open continues on the next line until it
is closed. Press Ctrl-C to discard a pending entry and Ctrl-D to exit.`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}

	cmd.Flags().String("prompt", "", "Prompt shown after the entry number (default ←)")
	cmd.Flags().String("history", "", "History file (default ~/.paws_history)")

	return cmd
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cc := NewCommandContext(cmd)
	session := newREPLSession(cc)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          session.prompt(),
		HistoryFile:     cc.Cfg.REPL.HistoryFile,
		AutoComplete:    replCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cPaws REPL")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			session.discard()
			rl.SetPrompt(session.prompt())
			continue
		}
		if errors.Is(err, io.EOF) {
			session.finish()
			return nil
		}
		if err != nil {
			return err
		}

		if quit := session.handle(line); quit {
			return nil
		}
		rl.SetPrompt(session.prompt())
	}
}

// replSession accumulates REPL input into entries and evaluates them.
type replSession struct {
	cc      *CommandContext
	pending strings.Builder
	entry   int
}

func newREPLSession(cc *CommandContext) *replSession {
	return &replSession{cc: cc, entry: 1}
}

// prompt returns the prompt for the next line: the entry number, or a
// continuation marker while an entry is open.
func (s *replSession) prompt() string {
	var p string
	if s.pending.Len() > 0 {
		p = fmt.Sprintf("%4s %s ", "", "…")
	} else {
		p = fmt.Sprintf("%4d %s ", s.entry, s.cc.Cfg.REPL.Prompt)
	}
	if s.cc.Renderer.Color() {
		p = s.cc.Renderer.Styles().Prompt.Render(p)
	}
	return p
}

func (s *replSession) name() string {
	return fmt.Sprintf("<repl:%d>", s.entry)
}

// handle processes one input line and reports whether the session should end.
func (s *replSession) handle(line string) bool {
	if s.pending.Len() == 0 {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return false
		}
		if quit, ok := s.dotCommand(trimmed); ok {
			return quit
		}
	}

	s.pending.WriteString(line)
	s.pending.WriteByte('\n')
	text := s.pending.String()

	prog, err := parser.ParseWithOptions(s.name(), text, s.cc.ParseOptions())
	var perr *parser.ParseError
	if errors.As(err, &perr) && perr.Kind == parser.UnterminatedGroup {
		s.cc.Logger.Debug("entry continues", "entry", s.entry, "expecting", string(perr.Delimiter))
		return false
	}

	s.pending.Reset()
	s.entry++
	if err != nil {
		s.showError(err, text)
		return false
	}
	if err := s.cc.Renderer.Program(prog); err != nil {
		s.showError(err, text)
	}
	return false
}

// finish reports an entry left open at end of input.
func (s *replSession) finish() {
	if s.pending.Len() == 0 {
		return
	}
	text := s.pending.String()
	if _, err := parser.ParseWithOptions(s.name(), text, s.cc.ParseOptions()); err != nil {
		s.showError(err, text)
	}
	s.discard()
}

// discard drops a pending entry.
func (s *replSession) discard() {
	s.pending.Reset()
}

func (s *replSession) showError(err error, text string) {
	if _, ok := output.ErrorPosition(err); ok {
		s.cc.Renderer.Diagnostic(err, text, s.cc.Cfg.Excerpt)
	} else {
		_, _ = fmt.Fprintf(s.cc.Renderer.ErrWriter(), "Error: %v\n", err)
	}
	_, _ = fmt.Fprintln(s.cc.Renderer.ErrWriter())
}

// dotCommand runs a REPL command. ok is false when line is not a known
// command and should be parsed as source instead.
func (s *replSession) dotCommand(line string) (quit, ok bool) {
	switch strings.ToLower(strings.Fields(line)[0]) {
	case ".quit", ".exit":
		return true, true
	case ".help":
		printREPLHelp(s.cc.Renderer.Writer(), s.cc.Renderer.Styles())
		return false, true
	default:
		return false, false
	}
}

func printREPLHelp(w io.Writer, styles *output.Styles) {
	help := `
%s
  .help           Show this help message
  .quit / .exit   Exit the REPL

%s
  - An open ( { " or “ continues the entry on the next line
  - Ctrl-C discards the pending entry
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintf(w, help+"\n", styles.Bold.Render("Commands:"), styles.Bold.Render("Tips:"))
}

func replCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
