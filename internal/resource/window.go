package resource

import (
	"fmt"
	"io"
	"sort"
)

// Window is a reserved half-open cycle range [Start, End), optionally tagged
// with the operation that reserved it.
type Window struct {
	Start int
	End   int
	Op    string
}

// Overlaps reports whether the window intersects [start, end).
func (w Window) Overlaps(start, end int) bool {
	return start < w.End && w.Start < end
}

// Windows is a set of reservations on one hardware unit.
type Windows []Window

// Clone returns an independent copy.
func (ws Windows) Clone() Windows {
	if ws == nil {
		return nil
	}
	return append(Windows(nil), ws...)
}

// ConflictsWith reports whether [start, end) overlaps a window reserved by a
// different operation. With op empty every overlap conflicts.
func (ws Windows) ConflictsWith(start, end int, op string) bool {
	for _, w := range ws {
		if !w.Overlaps(start, end) {
			continue
		}
		if op == "" || w.Op != op {
			return true
		}
	}
	return false
}

// MaxConcurrency returns the largest number of windows simultaneously active
// at any cycle of [start, end).
func (ws Windows) MaxConcurrency(start, end int) int {
	points := []int{start}
	for _, w := range ws {
		if w.Start > start && w.Start < end {
			points = append(points, w.Start)
		}
	}
	best := 0
	for _, t := range points {
		n := 0
		for _, w := range ws {
			if w.Start <= t && t < w.End {
				n++
			}
		}
		if n > best {
			best = n
		}
	}
	return best
}

// Dump writes the windows in start order.
func (ws Windows) Dump(w io.Writer, prefix string) {
	sorted := ws.Clone()
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	for _, win := range sorted {
		if win.Op != "" {
			fmt.Fprintf(w, "%s[%d, %d) %s\n", prefix, win.Start, win.End, win.Op)
		} else {
			fmt.Fprintf(w, "%s[%d, %d)\n", prefix, win.Start, win.End)
		}
	}
}

// OperationSet filters statements by instruction name. An empty set matches
// every statement.
type OperationSet map[string]struct{}

// NewOperationSet builds a set from a list of names.
func NewOperationSet(ops []string) OperationSet {
	s := make(OperationSet, len(ops))
	for _, op := range ops {
		s[op] = struct{}{}
	}
	return s
}

// Match reports whether the named operation is covered by the set.
func (s OperationSet) Match(name string) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[name]
	return ok
}
