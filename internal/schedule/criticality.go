package schedule

import (
	"context"
	"fmt"

	"github.com/specialistvlad/qcsched/internal/ctxlog"
	"github.com/specialistvlad/qcsched/internal/ddg"
)

// Criticality annotates every node of g with the length of its longest
// dependency path to g's Sink.
//
// The annotation is computed by an unconstrained Trivial pass over a
// reversed copy of g, started at g's Sink. g itself is only written to.
func Criticality(ctx context.Context, g *ddg.Graph) error {
	r := g.Reverse()
	defer r.Clear()

	sched, err := New(r, nil, Trivial{}).Run(ctx, 0)
	if err != nil {
		return fmt.Errorf("criticality pre-pass: %w", err)
	}
	for _, n := range g.Nodes {
		c := sched.Cycles[n.ID]
		if c < 0 {
			c = -c
		}
		n.Criticality = c
		n.HasCriticality = true
	}
	ctxlog.FromContext(ctx).Debug("Criticality computed.", "critical_path", g.Source.Criticality)
	return nil
}
