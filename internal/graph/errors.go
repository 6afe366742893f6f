package graph

import (
	"fmt"
	"strings"
)

// Issue describes one structural problem found during validation.
type Issue struct {
	Element string
	Message string
}

func (i Issue) String() string {
	if i.Element == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Element, i.Message)
}

// ValidationError carries every issue found in a setup document. Validation
// is exhaustive so the caller can report all problems at once.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("graph: %d validation issue(s): %s", len(e.Issues), strings.Join(msgs, "; "))
}

// Strings returns the issues as plain messages for the boundary report.
func (e *ValidationError) Strings() []string {
	out := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		out[i] = issue.String()
	}
	return out
}
