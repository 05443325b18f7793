package director

import "fmt"

// OutcomeCode classifies how an executor settled.
type OutcomeCode int

const (
	// OutcomeCompleted — the command's effect ran its course.
	OutcomeCompleted OutcomeCode = iota
	// OutcomeSkipped — a reference could not be resolved or the variant
	// was unrecognized; the command is treated as trivially successful.
	OutcomeSkipped
	// OutcomeFailed — the executor hit a real error; the task is marked
	// failed and the sequence continues.
	OutcomeFailed
)

// Outcome makes the skip-vs-fail distinction first class instead of an
// implicit resolve-on-every-path-but-one convention.
type Outcome struct {
	Code   OutcomeCode
	Reason string // set for skips
	Err    error  // set for failures
}

func Completed() Outcome {
	return Outcome{Code: OutcomeCompleted}
}

func Skipped(reason string) Outcome {
	return Outcome{Code: OutcomeSkipped, Reason: reason}
}

func Failed(err error) Outcome {
	return Outcome{Code: OutcomeFailed, Err: err}
}

func (o Outcome) String() string {
	switch o.Code {
	case OutcomeCompleted:
		return "completed"
	case OutcomeSkipped:
		return fmt.Sprintf("skipped (%s)", o.Reason)
	case OutcomeFailed:
		return fmt.Sprintf("failed (%v)", o.Err)
	default:
		return fmt.Sprintf("unknown(%d)", int(o.Code))
	}
}
