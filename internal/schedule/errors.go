package schedule

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/qcsched/internal/ir"
)

// ErrDeadlock marks a statement that could not be placed within the
// configured number of cycles past its earliest feasible cycle.
var ErrDeadlock = errors.New("resource deadlock")

// DeadlockError reports the statement that could not be placed.
type DeadlockError struct {
	Block     string
	Statement *ir.Statement
	// Bound is the earliest (latest, for backward scheduling) cycle the
	// dependencies allowed.
	Bound int
	// Cycle is the last cycle that was tried.
	Cycle int
	Limit int
}

func (e *DeadlockError) Error() string {
	return fmt.Sprintf("resource deadlock in block %q: %q could not be placed within %d cycles of cycle %d (gave up at cycle %d)",
		e.Block, e.Statement, e.Limit, e.Bound, e.Cycle)
}

func (e *DeadlockError) Is(target error) bool {
	return target == ErrDeadlock
}
