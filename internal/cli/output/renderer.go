// Package output renders CLI results: parse trees, token tables and
// diagnostics, in the format selected by configuration.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/paws/pkg/ast"
	"github.com/leapstack-labs/paws/pkg/parser"
	"github.com/leapstack-labs/paws/pkg/token"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Mode selects how results are written to stdout.
type Mode string

// Output modes.
const (
	ModeDebug Mode = "debug"
	ModeJSON  Mode = "json"
	ModeYAML  Mode = "yaml"
)

// Renderer writes results and diagnostics.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	color  bool
	styles *Styles
}

// NewRenderer creates a renderer. colorMode is one of auto, always or
// never; auto enables color only when errOut is a terminal whose
// environment allows it.
func NewRenderer(out, errOut io.Writer, mode Mode, colorMode string) *Renderer {
	var color bool
	switch colorMode {
	case "always":
		color = true
	case "never":
		color = false
	default:
		color = isTerminal(errOut) && termenv.NewOutput(errOut).EnvColorProfile() != termenv.Ascii
	}
	return NewRendererWithColor(out, errOut, mode, color)
}

// NewRendererWithColor creates a renderer with color forced on or off.
func NewRendererWithColor(out, errOut io.Writer, mode Mode, color bool) *Renderer {
	if mode == "" {
		mode = ModeDebug
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		color:  color,
		styles: NewStyles(errOut, color),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Mode returns the output mode.
func (r *Renderer) Mode() Mode { return r.mode }

// Color reports whether ANSI styling is enabled.
func (r *Renderer) Color() bool { return r.color }

// Styles returns the renderer's styles.
func (r *Renderer) Styles() *Styles { return r.styles }

// Writer returns the stdout writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the stderr writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Println writes a line to stdout.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// programDoc is the JSON and YAML document for a parsed program.
type programDoc struct {
	Source string        `json:"source" yaml:"source"`
	Nodes  []ast.Encoded `json:"nodes" yaml:"nodes"`
}

// Program writes a parsed program. Debug mode prints the canonical
// rendering on a single line.
func (r *Renderer) Program(p *ast.Program) error {
	switch r.mode {
	case ModeJSON, ModeYAML:
		doc := programDoc{Nodes: ast.Encode(nil)}
		if p != nil {
			doc.Source = p.Name
			doc.Nodes = ast.Encode(p.Nodes)
		}
		return r.encode(doc)
	default:
		r.Println(ast.RenderProgram(p))
		return nil
	}
}

// tokenDoc is the JSON and YAML form of a token.
type tokenDoc struct {
	Type    string `json:"type" yaml:"type"`
	Literal string `json:"literal,omitempty" yaml:"literal,omitempty"`
	Quote   string `json:"quote,omitempty" yaml:"quote,omitempty"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Offset  int    `json:"offset" yaml:"offset"`
}

// Tokens writes a token stream, as a table in debug mode.
func (r *Renderer) Tokens(toks []token.Token) error {
	if r.mode == ModeJSON || r.mode == ModeYAML {
		docs := make([]tokenDoc, 0, len(toks))
		for _, tok := range toks {
			d := tokenDoc{
				Type:    tok.Type.String(),
				Literal: tok.Literal,
				Line:    tok.Pos.Line,
				Column:  tok.Pos.Column,
				Offset:  tok.Pos.Offset,
			}
			if tok.Type == token.SYMBOL {
				d.Quote = tok.Quote.String()
			}
			docs = append(docs, d)
		}
		return r.encode(docs)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "TYPE", "LITERAL", "LINE", "COL", "OFFSET"})
	for i, tok := range toks {
		literal := tok.Literal
		if tok.Type == token.SYMBOL && tok.Quote != token.QuoteNone {
			literal = fmt.Sprintf("%q", tok.Literal)
		}
		t.AppendRow(table.Row{i + 1, tok.Type.String(), literal, tok.Pos.Line, tok.Pos.Column, tok.Pos.Offset})
	}
	t.Render()
	return nil
}

func (r *Renderer) encode(v any) error {
	switch r.mode {
	case ModeYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	}
}

// ErrorPosition extracts the source position of a parse or depth error.
func ErrorPosition(err error) (token.Position, bool) {
	var perr *parser.ParseError
	if errors.As(err, &perr) {
		return perr.Pos, true
	}
	var derr *parser.DepthError
	if errors.As(err, &derr) {
		return derr.Pos, true
	}
	return token.Position{}, false
}

// Diagnostic writes err to stderr on one line. With excerpt set and a
// position available, the offending source line follows with a caret.
func (r *Renderer) Diagnostic(err error, text string, excerpt bool) {
	line := err.Error()
	if r.color {
		line = r.colorDiagnostic(err, line)
	}
	_, _ = fmt.Fprintln(r.errOut, line)

	if !excerpt {
		return
	}
	if pos, ok := ErrorPosition(err); ok {
		ex := Excerpt(text, pos)
		if r.color && ex != "" {
			src, caret, _ := strings.Cut(strings.TrimSuffix(ex, "\n"), "\n")
			ex = r.styles.Muted.Render(src) + "\n" + r.styles.Caret.Render(caret) + "\n"
		}
		_, _ = fmt.Fprint(r.errOut, ex)
	}
}

// colorDiagnostic styles the location prefix and the message of a
// diagnostic line separately.
func (r *Renderer) colorDiagnostic(err error, line string) string {
	var located interface{ Message() string }
	if errors.As(err, &located) {
		msg := located.Message()
		if loc, ok := strings.CutSuffix(line, " "+msg); ok {
			return r.styles.Location.Render(loc) + " " + r.styles.Error.Render(msg)
		}
	}
	return r.styles.Error.Render(line)
}

// Summary writes the closing line of a multi-file check to stderr.
func (r *Renderer) Summary(files, failed int) {
	noun := "files"
	if files == 1 {
		noun = "file"
	}
	var line string
	if failed == 0 {
		line = fmt.Sprintf("checked %d %s, no problems", files, noun)
		if r.color {
			line = r.styles.Success.Render(line)
		}
	} else {
		line = fmt.Sprintf("checked %d %s, %d with errors", files, noun, failed)
		if r.color {
			line = r.styles.Error.Render(line)
		}
	}
	_, _ = fmt.Fprintln(r.errOut, line)
}
