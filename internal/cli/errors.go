package cli

import (
	"errors"
	"fmt"
	"io"
)

// ReportedError marks a failure the command already showed the user
// through a notification.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// PrintError writes err to w unless it was already reported.
func PrintError(w io.Writer, err error) {
	var reported *ReportedError
	if err == nil || errors.As(err, &reported) {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
