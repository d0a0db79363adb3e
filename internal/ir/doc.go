// Package ir defines the statement and block model that the scheduler
// operates on.
//
// A Program owns one Block per kernel. A Block is an ordered list of
// Statements; structured statements (IfElse, Loop) own nested Blocks that are
// scheduled on their own. The scheduler mutates statements in place by
// assigning a Cycle, and marks the owning block with CyclesValid once every
// statement in it has one.
package ir
