package allpcs

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of the graph.
//
// Index nodes are drawn by kind: decision nodes as ellipses, pass-through
// nodes as plain points, the complete terminal as a double circle and the
// abort terminal as a box. Item edges carry the placed piece they commit to
// as their label. The output is a complete digraph renderable with the
// Graphviz tools or with RenderSVG.
func (n *Nodes) ToDOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph PlacementGraph {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [fontname=\"SF Mono, Menlo, monospace\", fontsize=10];\n\n")

	for id, node := range n.indexes {
		nodeID := fmt.Sprintf("i%d", id)
		switch node.Kind {
		case IndexKindToItem:
			fmt.Fprintf(&buf, "  %s [label=\"i%d\", shape=ellipse];\n", nodeID, id)
			for itemID := node.First; itemID < node.First+ItemID(node.Count); itemID++ {
				item := n.items[itemID]
				fmt.Fprintf(&buf, "  %s -> i%d [label=%q];\n", nodeID, item.Next, n.pieces[item.PieceIndex].String())
			}
		case IndexKindToNextIndex:
			fmt.Fprintf(&buf, "  %s [label=\"\", shape=point];\n", nodeID)
			fmt.Fprintf(&buf, "  %s -> i%d;\n", nodeID, node.Next)
		case IndexKindComplete:
			fmt.Fprintf(&buf, "  %s [label=\"complete\", shape=doublecircle];\n", nodeID)
		case IndexKindAbort:
			fmt.Fprintf(&buf, "  %s [label=\"abort\", shape=box];\n", nodeID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders the graph as an SVG image.
//
// RenderSVG generates a DOT representation via ToDOT, then uses Graphviz to
// render it to SVG. The returned bytes are a complete SVG document. Errors
// are wrapped with %w and cover Graphviz initialization, DOT parsing and
// rendering.
func (n *Nodes) RenderSVG() ([]byte, error) {
	dot := n.ToDOT()

	gv, err := graphviz.New(context.Background())
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(context.Background(), g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
