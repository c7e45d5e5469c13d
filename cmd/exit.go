package cmd

import (
	"errors"

	"github.com/lakshaymaurya-felt/venvsweep/internal/pipeline"
)

// exitError carries the run's exit status. When reported is set the error
// has already been shown to the user.
type exitError struct {
	status   pipeline.ExitStatus
	err      error
	reported bool
}

func (e *exitError) Error() string {
	if e.err == nil {
		return e.status.String()
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func fatal(err error) error {
	return &exitError{status: pipeline.StatusFatal, err: err}
}

// exitFor maps a finished run to its exit error; nil means success. The
// summary has already been rendered, so nothing more is printed.
func exitFor(sum pipeline.Summary) error {
	st := sum.Status()
	if st == pipeline.StatusSuccess {
		return nil
	}
	return &exitError{status: st, err: sum.Err, reported: true}
}

// ExitCode returns the process exit code for an error returned by Execute,
// and whether the error still needs to be printed.
func ExitCode(err error) (code int, show bool) {
	if err == nil {
		return 0, false
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.status.Code(), !ee.reported && ee.err != nil
	}
	return pipeline.StatusFatal.Code(), true
}
