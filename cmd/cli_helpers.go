package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/josephgoksu/planwing/internal/config"
	"github.com/josephgoksu/planwing/models"
	"github.com/josephgoksu/planwing/store"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// storeFs is the filesystem the command layer builds stores on. A variable
// so command tests can swap in afero.NewMemMapFs.
var storeFs afero.Fs = afero.NewOsFs()

func isJSON() bool {
	return viper.GetBool("json")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

// resolvePlan returns the plan name from flag or config.
func resolvePlan() string {
	if plan := viper.GetString("project.plan"); plan != "" {
		return plan
	}
	return config.DefaultPlanName
}

// resolvePlatform returns the platform from flag or config. There is no
// default: a missing platform is a boundary error, because the platform
// decides ID prefixes and must never be assumed.
func resolvePlatform() (models.Platform, error) {
	return models.ParsePlatform(viper.GetString("project.platform"))
}

// getStore constructs the file store for the resolved (plan, platform) pair.
func getStore() (*store.FileTaskStore, error) {
	platform, err := resolvePlatform()
	if err != nil {
		return nil, err
	}
	s, err := store.NewFileTaskStore(storeFs, config.GetTasksBasePath(), resolvePlan(), platform)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	for _, skip := range s.Skipped() {
		LogError("skipped malformed task entry", skip)
	}
	return s, nil
}
