// Package config provides centralized configuration defaults and path
// resolution for PlanWing. All default values live here so there is a
// single source of truth.
package config

const (
	// DefaultRootDir is the project-local directory holding PlanWing state.
	DefaultRootDir = ".planwing"

	// DefaultTasksDir is the subdirectory of the root dir holding task files.
	DefaultTasksDir = "tasks"

	// DefaultPlanName is used when neither flag nor config names a plan.
	DefaultPlanName = "default"

	// ConfigFileName is the project config scaffold written by project init.
	ConfigFileName = ".planwing.yaml"

	// UnknownMetadata is the literal shown when a plan or platform cannot
	// be resolved for display. Metadata is never silently omitted.
	UnknownMetadata = "unknown"
)
