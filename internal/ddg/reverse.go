package ddg

// Reverse returns a distinct graph with every edge turned around. Nodes keep
// their ID, Order, statement and criticality; Source and Sink swap roles.
// The receiver is left untouched.
func (g *Graph) Reverse() *Graph {
	r := &Graph{
		Block:    g.Block,
		Nodes:    make([]*Node, len(g.Nodes)),
		Reversed: !g.Reversed,
	}
	for i, n := range g.Nodes {
		c := &Node{
			ID:             n.ID,
			Order:          n.Order,
			Kind:           n.Kind,
			Statement:      n.Statement,
			Criticality:    n.Criticality,
			HasCriticality: n.HasCriticality,
		}
		switch n.Kind {
		case SourceNode:
			c.Kind = SinkNode
			r.Sink = c
		case SinkNode:
			c.Kind = SourceNode
			r.Source = c
		}
		r.Nodes[i] = c
	}
	for _, n := range g.Nodes {
		for _, e := range n.Succs {
			from, to := r.Nodes[e.To.ID], r.Nodes[e.From.ID]
			re := &Edge{From: from, To: to, Kind: e.Kind, Latency: e.Latency, Cause: e.Cause}
			from.Succs = append(from.Succs, re)
			to.Preds = append(to.Preds, re)
			r.edgeCount++
		}
	}
	return r
}
