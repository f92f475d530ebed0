package config

import (
	"path/filepath"
	"strings"

	"github.com/josephgoksu/planwing/models"
	"github.com/spf13/viper"
)

// GetRootDir returns the project-local PlanWing directory.
// It's a variable to allow overriding in tests.
var GetRootDir = func() string {
	if dir := viper.GetString("project.rootDir"); dir != "" {
		return dir
	}
	return DefaultRootDir
}

// GetTasksBasePath returns the directory holding per-plan task files.
func GetTasksBasePath() string {
	tasksDir := viper.GetString("project.tasksDir")
	if tasksDir == "" {
		tasksDir = DefaultTasksDir
	}
	return filepath.Join(GetRootDir(), tasksDir)
}

// GetConfigFilePath returns the project config scaffold location.
func GetConfigFilePath() string {
	return filepath.Join(GetRootDir(), ConfigFileName)
}

// ParseTaskFileName recovers (planName, platform) from a task file name of
// the form <plan>.<platform>.jsonl. This is a display-only fallback for
// files opened without explicit metadata; it is never used to decide ID
// prefixes. Both values fall back to the "unknown" literal when the name
// does not fit the scheme.
func ParseTaskFileName(name string) (planName string, platform string) {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, ".jsonl")

	idx := strings.LastIndex(base, ".")
	if idx <= 0 || idx == len(base)-1 {
		return UnknownMetadata, UnknownMetadata
	}

	plan, rawPlatform := base[:idx], base[idx+1:]
	if _, err := models.ParsePlatform(rawPlatform); err != nil {
		return UnknownMetadata, UnknownMetadata
	}
	return plan, rawPlatform
}
