package render

import (
	"path/filepath"
	"strings"
)

// Chain is one link of a filter graph: labelled input streams, an ordered
// filter list, and labelled outputs.
type Chain struct {
	Inputs  []string
	Filters []string
	Outputs []string
}

// Graph is an ordered sequence of chains. Order is load-bearing: ffmpeg
// resolves stream labels as it parses, and input references are
// positional, so chains are serialized exactly as added and never
// reordered.
type Graph struct {
	chains []Chain
}

// Add appends a chain to the graph.
func (g *Graph) Add(c Chain) {
	g.chains = append(g.chains, c)
}

// Chains returns the chains in serialization order.
func (g *Graph) Chains() []Chain {
	return g.chains
}

// String serializes the graph to ffmpeg filter_complex syntax.
func (g *Graph) String() string {
	var b strings.Builder
	for i, c := range g.chains {
		if i > 0 {
			b.WriteString(";")
		}
		for _, in := range c.Inputs {
			b.WriteString("[" + in + "]")
		}
		b.WriteString(strings.Join(c.Filters, ","))
		for _, out := range c.Outputs {
			b.WriteString("[" + out + "]")
		}
	}
	return b.String()
}

// escapeFilterPath rewrites a filesystem path for use inside a quoted
// filter argument.
func escapeFilterPath(p string) string {
	p = filepath.ToSlash(p)
	return strings.ReplaceAll(p, ":", "\\:")
}
