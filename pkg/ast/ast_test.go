package ast_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/leapstack-labs/paws/pkg/ast"
	"github.com/leapstack-labs/paws/pkg/parser"
	"github.com/leapstack-labs/paws/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sym(text string) *ast.Symbol { return &ast.Symbol{Text: text} }

func expr(children ...ast.Node) *ast.Expression { return &ast.Expression{Children: children} }

func exec(children ...ast.Node) *ast.Execution { return &ast.Execution{Children: children} }

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{"symbol", sym("happy"), `Symbol("happy")`},
		{"symbol escapes", sym("a\n\tb \"c\""), `Symbol("a\n\tb \"c\"")`},
		{"empty expression", expr(), `Expression([])`},
		{"expression", expr(sym("a"), sym("b")), `Expression([Symbol("a"), Symbol("b")])`},
		{"execution", exec(sym("a"), expr(sym("b"))), `Execution([Symbol("a"), Expression([Symbol("b")])])`},
		{"nested siblings", expr(expr(sym("a")), exec(), sym("c")), `Expression([Expression([Symbol("a")]), Execution([]), Symbol("c")])`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ast.Render(tt.node))
		})
	}
}

func TestRenderProgram(t *testing.T) {
	assert.Equal(t, "[]", ast.RenderProgram(nil))
	assert.Equal(t, "[]", ast.RenderProgram(&ast.Program{}))
	assert.Equal(t, `[Symbol("a"), Execution([])]`, ast.RenderNodes([]ast.Node{sym("a"), exec()}))
}

func TestWalkOrder(t *testing.T) {
	nodes := []ast.Node{sym("a"), expr(sym("b"), exec(sym("c"))), sym("d")}

	var visited []string
	ast.Walk(nodes, func(n ast.Node, depth int) bool {
		switch n := n.(type) {
		case *ast.Symbol:
			visited = append(visited, strings.Repeat(">", depth)+n.Text)
		case *ast.Expression:
			visited = append(visited, strings.Repeat(">", depth)+"()")
		case *ast.Execution:
			visited = append(visited, strings.Repeat(">", depth)+"{}")
		}
		return true
	})
	assert.Equal(t, []string{"a", "()", ">b", ">{}", ">>c", "d"}, visited)
}

func TestWalkSkipChildren(t *testing.T) {
	nodes := []ast.Node{expr(sym("hidden")), sym("seen")}
	var visited int
	ast.Walk(nodes, func(n ast.Node, _ int) bool {
		visited++
		_, isGroup := n.(ast.Group)
		return !isGroup
	})
	assert.Equal(t, 2, visited)
}

func TestCountAndDepth(t *testing.T) {
	nodes := []ast.Node{sym("a"), expr(sym("b"), exec(sym("c"), expr())), sym("d")}
	symbols, groups := ast.Count(nodes)
	assert.Equal(t, 4, symbols)
	assert.Equal(t, 3, groups)
	assert.Equal(t, 3, ast.Depth(nodes))
	assert.Equal(t, 0, ast.Depth([]ast.Node{sym("x")}))
}

func TestNodeAt(t *testing.T) {
	prog, err := parser.Parse("at", "a (bb {c})")
	require.NoError(t, err)

	tests := []struct {
		offset int
		want   string
	}{
		{0, `Symbol("a")`},
		{1, ""},
		{2, `Expression([Symbol("bb"), Execution([Symbol("c")])])`},
		{4, `Symbol("bb")`},
		{6, `Execution([Symbol("c")])`},
		{7, `Symbol("c")`},
		{9, `Expression([Symbol("bb"), Execution([Symbol("c")])])`},
		{10, ""},
	}
	for _, tt := range tests {
		n := ast.NodeAt(prog.Nodes, tt.offset)
		if tt.want == "" {
			assert.Nil(t, n, "offset %d", tt.offset)
			continue
		}
		require.NotNil(t, n, "offset %d", tt.offset)
		assert.Equal(t, tt.want, ast.Render(n), "offset %d", tt.offset)
	}
}

func TestEqual(t *testing.T) {
	a := []ast.Node{sym("a"), expr(sym("b"))}
	assert.True(t, ast.Equal(a, []ast.Node{sym("a"), expr(sym("b"))}))
	assert.False(t, ast.Equal(a, []ast.Node{sym("a"), exec(sym("b"))}))
	assert.False(t, ast.Equal(a, []ast.Node{sym("a"), expr(sym("c"))}))
	assert.False(t, ast.Equal(a, []ast.Node{sym("a")}))
	assert.True(t, ast.Equal(nil, []ast.Node{}))
}

func TestNewGroup(t *testing.T) {
	open := token.Token{Type: token.LBRACE, Pos: token.Position{Line: 1, Column: 1}}
	g := ast.NewGroup(open, nil, token.Position{Line: 1, Column: 3, Offset: 2})
	require.NotNil(t, g)
	_, ok := g.(*ast.Execution)
	assert.True(t, ok)

	openRune, closeRune := g.Delimiters()
	assert.Equal(t, '{', openRune)
	assert.Equal(t, '}', closeRune)

	assert.Nil(t, ast.NewGroup(token.Token{Type: token.SYMBOL}, nil, token.Position{}))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "  \n",
			want:  "",
		},
		{
			name:  "flat groups stay on one line",
			input: "a   (b\n c)  {d}",
			want:  "a\n(b c)\n{d}\n",
		},
		{
			name:  "nested groups indent",
			input: "{happy (x y) z}",
			want:  "{\n  happy\n  (x y)\n  z\n}\n",
		},
		{
			name:  "quoting",
			input: "\"has space\" “has \"straight\"” \"\" \"close”\"",
			want:  "\"has space\"\n“has \"straight\"”\n\"\"\n\"close”\"\n",
		},
		{
			name:  "deeper nesting",
			input: "(a {b (c)})",
			want:  "(\n  a\n  {\n    b\n    (c)\n  }\n)\n",
		},
		{
			name:  "empty groups",
			input: "() {}",
			want:  "()\n{}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parser.Parse("fmt", tt.input)
			require.NoError(t, err)

			got, err := ast.FormatProgram(prog)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// Formatted output parses back to the same tree.
			again, err := parser.Parse("fmt", got)
			require.NoError(t, err)
			assert.True(t, ast.Equal(prog.Nodes, again.Nodes))
		})
	}
}

func TestFormatUnquotable(t *testing.T) {
	_, err := ast.Format([]ast.Node{expr(sym("both \" and ”"))})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ast.ErrUnquotable))
}

func TestFormatDeep(t *testing.T) {
	const depth = 500
	input := strings.Repeat("(", depth) + "x" + strings.Repeat(")", depth)
	prog, err := parser.Parse("deep", input)
	require.NoError(t, err)

	out, err := ast.FormatProgram(prog)
	require.NoError(t, err)

	again, err := parser.Parse("deep", out)
	require.NoError(t, err)
	assert.True(t, ast.Equal(prog.Nodes, again.Nodes))
}
