package templates

import "strings"

// NodeKind classifies a node of a parsed template.
type NodeKind int

const (
	NodeText NodeKind = iota
	NodeVariable
	NodeSection
	NodePosts
)

// Node is an element of a parsed template tree. Sections and posts blocks own
// children; Open and Close keep their source tags verbatim.
type Node struct {
	Kind     NodeKind
	Name     string
	Args     string
	Open     string
	Close    string
	Children []*Node
}

// Source writes the node back exactly as it appeared in the template.
func (n *Node) Source() string {
	var b strings.Builder
	n.writeSource(&b)
	return b.String()
}

func (n *Node) writeSource(b *strings.Builder) {
	b.WriteString(n.Open)
	for _, c := range n.Children {
		c.writeSource(b)
	}
	b.WriteString(n.Close)
}

// Template is a parsed template.
type Template struct {
	Nodes []*Node
}

// Source reproduces the original template text.
func (t *Template) Source() string {
	var b strings.Builder
	for _, n := range t.Nodes {
		n.writeSource(&b)
	}
	return b.String()
}

// Parse tokenizes src and builds the node tree. Opening and closing tags are
// paired innermost first; an opening tag without its close, or a close without
// its opening, degrades to text.
func Parse(src string) *Template {
	tokens := Tokenize(src)
	partner := pairTokens(tokens)
	nodes := buildNodes(tokens, partner, 0, len(tokens))
	return &Template{Nodes: nodes}
}

// pairTokens maps the index of every matched opening token to its closing token.
func pairTokens(tokens []Token) map[int]int {
	partner := make(map[int]int)
	var stack []int
	for i, tok := range tokens {
		switch tok.Kind {
		case TokenSectionOpen, TokenPostsOpen:
			stack = append(stack, i)
		case TokenSectionClose, TokenPostsClose:
			for j := len(stack) - 1; j >= 0; j-- {
				open := tokens[stack[j]]
				if closes(open, tok) {
					partner[stack[j]] = i
					stack = stack[:j]
					break
				}
			}
		}
	}
	return partner
}

func closes(open, closeTok Token) bool {
	if open.Kind == TokenPostsOpen {
		return closeTok.Kind == TokenPostsClose
	}
	return closeTok.Kind == TokenSectionClose && open.Name == closeTok.Name
}

func buildNodes(tokens []Token, partner map[int]int, from, to int) []*Node {
	var nodes []*Node
	appendText := func(raw string) {
		if n := len(nodes); n > 0 && nodes[n-1].Kind == NodeText {
			nodes[n-1].Open += raw
			return
		}
		nodes = append(nodes, &Node{Kind: NodeText, Open: raw})
	}

	for i := from; i < to; i++ {
		tok := tokens[i]
		switch tok.Kind {
		case TokenVariable:
			nodes = append(nodes, &Node{Kind: NodeVariable, Name: tok.Name, Open: tok.Raw})
		case TokenSectionOpen, TokenPostsOpen:
			end, ok := partner[i]
			if !ok {
				appendText(tok.Raw)
				continue
			}
			children := buildNodes(tokens, partner, i+1, end)
			kind := NodeSection
			if tok.Kind == TokenPostsOpen {
				kind = NodePosts
			}
			nodes = append(nodes, &Node{
				Kind:     kind,
				Name:     tok.Name,
				Args:     tok.Args,
				Open:     tok.Raw,
				Close:    tokens[end].Raw,
				Children: children,
			})
			i = end
		default:
			appendText(tok.Raw)
		}
	}
	return nodes
}
