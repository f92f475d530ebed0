package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Platform identifies which side of the project a plan's tasks belong to.
// It determines the task ID prefix and the backing file, and is fixed when
// a store is constructed. It is never inferred from loaded data.
type Platform string

const (
	PlatformFrontend Platform = "frontend"
	PlatformBackend  Platform = "backend"
)

// ParsePlatform converts boundary input (flags, config) into a Platform.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformFrontend:
		return PlatformFrontend, nil
	case PlatformBackend:
		return PlatformBackend, nil
	case "":
		return "", fmt.Errorf("platform is required (frontend or backend)")
	default:
		return "", fmt.Errorf("unknown platform %q (expected frontend or backend)", s)
	}
}

// TaskLevel represents the priority levels of a task.
type TaskLevel string

const (
	LevelCritical TaskLevel = "critical"
	LevelHigh     TaskLevel = "high"
	LevelMedium   TaskLevel = "medium"
	LevelLow      TaskLevel = "low"
)

// TaskEffort is a t-shirt size estimate.
type TaskEffort string

const (
	EffortS  TaskEffort = "S"
	EffortM  TaskEffort = "M"
	EffortL  TaskEffort = "L"
	EffortXL TaskEffort = "XL"
)

// Task represents a unit of work tracked for one plan+platform pair.
type Task struct {
	ID           string     `json:"id" validate:"required"`
	Name         string     `json:"name" validate:"required,min=1"`
	Level        TaskLevel  `json:"level" validate:"required,oneof=critical high medium low"`
	Component    string     `json:"component" validate:"required,min=1"`
	Effort       TaskEffort `json:"effort,omitempty" validate:"omitempty,oneof=S M L XL"`
	Ready        bool       `json:"ready"`
	Done         bool       `json:"done"`
	Dependencies []string   `json:"dependencies,omitempty" validate:"omitempty,dive,min=1"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// TaskCreate is the payload for creating a task. The ID is always allocated
// by the store, never supplied by the caller.
type TaskCreate struct {
	Name         string     `json:"name" validate:"required,min=1"`
	Level        TaskLevel  `json:"level" validate:"required,oneof=critical high medium low"`
	Component    string     `json:"component" validate:"required,min=1"`
	Effort       TaskEffort `json:"effort,omitempty" validate:"omitempty,oneof=S M L XL"`
	NotReady     bool       `json:"notReady,omitempty"`
	Done         bool       `json:"done,omitempty"`
	Dependencies []string   `json:"dependencies,omitempty" validate:"omitempty,dive,min=1"`
}

// TaskUpdate is the payload for updating a task. Every field is optional;
// there is deliberately no ID field, so the ID cannot be changed.
type TaskUpdate struct {
	Name         *string     `json:"name,omitempty" validate:"omitempty,min=1"`
	Level        *TaskLevel  `json:"level,omitempty" validate:"omitempty,oneof=critical high medium low"`
	Component    *string     `json:"component,omitempty" validate:"omitempty,min=1"`
	Effort       *TaskEffort `json:"effort,omitempty" validate:"omitempty,oneof=S M L XL"`
	Ready        *bool       `json:"ready,omitempty"`
	Done         *bool       `json:"done,omitempty"`
	Dependencies *[]string   `json:"dependencies,omitempty"`
}

// Metadata describes which file a collection of tasks belongs to.
type Metadata struct {
	PlanName string   `json:"planName"`
	Platform Platform `json:"platform"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// issuesFromStruct runs struct-tag validation and converts every failed
// field into one issue, so a caller sees every problem at once.
func issuesFromStruct(s interface{}) []ValidationIssue {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ValidationIssue{{Severity: SeverityError, Message: err.Error()}}
	}
	issues := make([]ValidationIssue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, ValidationIssue{
			Severity: SeverityError,
			Field:    jsonFieldName(fe.Field()),
			Message:  fieldMessage(fe),
		})
	}
	return issues
}

// Validate checks every provided field of a create payload and returns all
// violations, one issue per field.
func (p TaskCreate) Validate() []ValidationIssue {
	return issuesFromStruct(p)
}

// Validate checks every provided field of an update payload.
func (p TaskUpdate) Validate() []ValidationIssue {
	return issuesFromStruct(p)
}

// ValidateTask checks a full task record, e.g. the merged result of an
// update or a record loaded from disk.
func ValidateTask(t Task) []ValidationIssue {
	issues := issuesFromStruct(t)
	for i := range issues {
		issues[i].TaskID = t.ID
	}
	return issues
}

// ApplyTo overlays the set fields of the update onto an existing task and
// returns the merged record. Unset fields keep their current values.
func (p TaskUpdate) ApplyTo(t Task) Task {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Level != nil {
		t.Level = *p.Level
	}
	if p.Component != nil {
		t.Component = *p.Component
	}
	if p.Effort != nil {
		t.Effort = *p.Effort
	}
	if p.Ready != nil {
		t.Ready = *p.Ready
	}
	if p.Done != nil {
		t.Done = *p.Done
	}
	if p.Dependencies != nil {
		t.Dependencies = append([]string(nil), (*p.Dependencies)...)
	}
	return t
}

// NewTask builds a task from a validated create payload and an allocated ID,
// applying the creation defaults: ready unless explicitly marked not-ready,
// done only when the creation flag says so.
func NewTask(id string, p TaskCreate) Task {
	now := time.Now().UTC()
	return Task{
		ID:           id,
		Name:         p.Name,
		Level:        p.Level,
		Component:    p.Component,
		Effort:       p.Effort,
		Ready:        !p.NotReady,
		Done:         p.Done,
		Dependencies: append([]string(nil), p.Dependencies...),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// jsonFieldNames maps exported struct field names to their wire names so
// issue output matches what users typed on the command line.
var jsonFieldNames = map[string]string{
	"ID":           "id",
	"Name":         "name",
	"Level":        "level",
	"Component":    "component",
	"Effort":       "effort",
	"Ready":        "ready",
	"NotReady":     "notReady",
	"Done":         "done",
	"Dependencies": "dependencies",
}

func jsonFieldName(structField string) string {
	if name, ok := jsonFieldNames[structField]; ok {
		return name
	}
	if structField == "" {
		return structField
	}
	return strings.ToLower(structField[:1]) + structField[1:]
}

func fieldMessage(fe validator.FieldError) string {
	field := jsonFieldName(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must not be empty", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s (got %q)", field, strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	default:
		return fmt.Sprintf("%s failed validation rule %q", field, fe.Tag())
	}
}
