// Package pass runs the scheduler over every block of a program.
//
// It builds the resource state once, clones it for every block, and
// schedules independent blocks (kernels and control-flow bodies)
// concurrently. Each block is built into a dependency graph, optionally
// annotated with criticality, scheduled in the configured direction and
// written back onto its statements.
package pass
