package render

import "fmt"

// InvariantError reports index math that escaped the validated image bounds
// It is raised with panic: the hot path assumes load-time validation held
type InvariantError struct {
	Op     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("render invariant violated in %s: %s", e.Op, e.Detail)
}

func invariantf(op, format string, args ...any) {
	panic(&InvariantError{Op: op, Detail: fmt.Sprintf(format, args...)})
}
