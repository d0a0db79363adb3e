// Package resource is the core of the resource model: stateful constraint
// checkers that decide in which cycles a statement may be placed.
//
// # Contract
//
// A Resource is initialized exactly once with a Direction. From then on every
// cycle presented to Gate must respect that direction: non-decreasing for
// Forward, non-increasing for Backward, unconstrained for Undefined. Gate with
// commit=false is a pure query; with commit=true it records the reservation
// when the statement fits.
//
// # State
//
// A State aggregates resources. Available is the short-circuiting AND of all
// queries; Reserve commits on every resource. An unexpected refusal during
// Reserve, or any protocol violation, poisons the State: every later call
// returns ErrStateBroken without consulting the resources again.
//
// A State is owned by exactly one scheduling run. Runs that need their own
// copy take one with Clone, which deep-copies every resource.
package resource
