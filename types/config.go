package types

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	JSON    bool          `mapstructure:"json"`
	Config  string        `mapstructure:"config"`
	Project ProjectConfig `mapstructure:"project" validate:"required"`
}

// ProjectConfig holds project-related settings.
type ProjectConfig struct {
	RootDir  string `mapstructure:"rootDir" validate:"required"`
	TasksDir string `mapstructure:"tasksDir" validate:"required"`
	// Plan is the default plan name used when --plan is not given.
	Plan string `mapstructure:"plan"`
	// Platform has no default: the platform determines ID prefixes and must
	// arrive explicitly via flag or config, never be assumed.
	Platform  string   `mapstructure:"platform" validate:"omitempty,oneof=frontend backend"`
	Framework string   `mapstructure:"framework"`
	Deps      []string `mapstructure:"deps"`
}
