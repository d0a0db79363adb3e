// Package schedule assigns cycles to the statements of a block.
//
// Scheduler is a resource-constrained list scheduler over a ddg.Graph. It
// keeps one current cycle that only moves in the scheduling direction
// (forward for ASAP on a regular graph, backward for ALAP on a reversed
// graph), so every resource sees a monotone sequence of cycles. At each
// cycle it places the highest priority ready statement whose dependencies
// allow it and that the resource state accepts.
//
// Priorities come from a Heuristic. CriticalPath and DeepCriticality read
// the criticality annotation written by Criticality.
package schedule
