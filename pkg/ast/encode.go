package ast

// Encoded is a serialization-friendly view of a node, used for JSON and
// YAML output.
type Encoded struct {
	Kind     string    `json:"kind" yaml:"kind"`
	Text     *string   `json:"text,omitempty" yaml:"text,omitempty"`
	Quote    string    `json:"quote,omitempty" yaml:"quote,omitempty"`
	Line     int       `json:"line" yaml:"line"`
	Column   int       `json:"column" yaml:"column"`
	Children []Encoded `json:"children,omitempty" yaml:"children,omitempty"`
}

// Node kind names used in Encoded.Kind.
const (
	KindSymbol     = "symbol"
	KindExpression = "expression"
	KindExecution  = "execution"
)

// Encode converts nodes to their Encoded form.
func Encode(nodes []Node) []Encoded {
	out := make([]Encoded, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, encodeNode(n))
	}
	return out
}

func encodeNode(n Node) Encoded {
	pos := n.Position()
	e := Encoded{Line: pos.Line, Column: pos.Column}

	switch n := n.(type) {
	case *Symbol:
		text := n.Text
		e.Kind = KindSymbol
		e.Text = &text
		e.Quote = n.Quote.String()
	case *Expression:
		e.Kind = KindExpression
		e.Children = Encode(n.Children)
	case *Execution:
		e.Kind = KindExecution
		e.Children = Encode(n.Children)
	}
	return e
}
