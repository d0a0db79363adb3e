package resource

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownType is returned when a configuration names a resource type
	// that no registered provider implements.
	ErrUnknownType = errors.New("unknown resource type")
	// ErrDirection marks a cycle presented against a resource's direction.
	ErrDirection = errors.New("cycle presented against resource direction")
	// ErrStateBroken is returned by every operation on a poisoned State.
	ErrStateBroken = errors.New("resource state is broken")
	// ErrNotInitialized is returned when Gate is called before Initialize.
	ErrNotInitialized = errors.New("resource used before initialization")
)

// ConfigError reports malformed or missing configuration for a resource.
type ConfigError struct {
	Resource string
	Err      error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("resource %q: invalid configuration: %v", e.Resource, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// DirectionError is returned when a resource is presented a cycle that
// breaks its monotonicity contract. It indicates a scheduler defect.
type DirectionError struct {
	Resource  string
	Direction Direction
	Last      int
	Presented int
}

func (e *DirectionError) Error() string {
	return fmt.Sprintf("resource %q (%s): cycle %d presented after cycle %d", e.Resource, e.Direction, e.Presented, e.Last)
}

func (e *DirectionError) Is(target error) bool {
	return target == ErrDirection
}
