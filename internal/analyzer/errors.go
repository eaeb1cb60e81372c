package analyzer

import "fmt"

// Stage identifies which part of the pipeline a cycle failed in.
type Stage string

const (
	StageCapture   Stage = "capture"
	StageTransport Stage = "transport"
	StageParse     Stage = "parse"
)

// CycleError tags a failed cycle with the pipeline stage that failed so the
// loop can log the kind without string matching. Raw carries the unparsed
// model reply on parse failures.
type CycleError struct {
	Stage Stage
	Err   error
	Raw   string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *CycleError) Unwrap() error {
	return e.Err
}
