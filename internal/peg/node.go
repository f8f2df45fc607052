package peg

// Node is one node of the concrete parse tree.
type Node struct {
	rule      *Rule
	input     string
	start     int
	end       int
	action    int
	hasAction bool
	children  []*Node
}

// Text returns the matched source text.
func (n *Node) Text() string { return n.input[n.start:n.end] }

// Len returns the length in bytes of the matched text.
func (n *Node) Len() int { return n.end - n.start }

// Offset returns the byte offset of the match in the input.
func (n *Node) Offset() int { return n.start }

// Action returns the action id attached to the rule that produced n.
func (n *Node) Action() (int, bool) { return n.action, n.hasAction }

func (n *Node) Children() []*Node { return n.children }

func (n *Node) RuleName() string { return n.rule.name }
