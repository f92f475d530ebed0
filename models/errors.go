package models

import (
	"fmt"
	"strings"
)

// Severity classifies a validation issue. Errors fail a validation run;
// warnings are reported but do not affect the exit code.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationIssue is a single field-level or graph-level problem. Validation
// always runs to completion, so callers receive every issue found.
type ValidationIssue struct {
	Severity Severity `json:"severity"`
	TaskID   string   `json:"taskId,omitempty"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
}

func (i ValidationIssue) String() string {
	if i.TaskID != "" {
		return fmt.Sprintf("[%s] %s: %s", i.Severity, i.TaskID, i.Message)
	}
	return fmt.Sprintf("[%s] %s", i.Severity, i.Message)
}

// ValidationErrors carries the full issue list as a Go error. It is only
// returned when at least one issue exists.
type ValidationErrors []ValidationIssue

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, issue := range e {
		msgs[i] = issue.Message
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// HasErrors reports whether any issue in the list has error severity.
func HasErrors(issues []ValidationIssue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// NotFoundError indicates a referenced task ID does not exist in the store.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task with ID '%s' not found", e.ID)
}

// PlanNotInitializedError indicates an operation that requires an existing
// plan was run against a store whose backing file has never been created.
type PlanNotInitializedError struct {
	PlanName string
	Platform Platform
}

func (e *PlanNotInitializedError) Error() string {
	return fmt.Sprintf("plan '%s' (%s) has not been initialized; run 'planwing project init' first", e.PlanName, e.Platform)
}
