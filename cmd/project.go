package cmd

import (
	"fmt"

	"github.com/josephgoksu/planwing/internal/config"
	"github.com/josephgoksu/planwing/internal/ui"
	"github.com/josephgoksu/planwing/models"
	"github.com/josephgoksu/planwing/store"
	"github.com/spf13/cobra"
)

// projectCmd groups the plan-level subcommands.
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Initialize and validate task plans",
}

var (
	initFramework string
	initDeps      []string
)

var projectInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the task file for the current plan",
	Long: `Create the task file for the resolved (plan, platform) pair and the
project config scaffold. Running init over a plan that already holds
tasks is a warning and changes nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := getStore()
		if err != nil {
			return err
		}

		result, err := s.Init()
		if err != nil {
			return err
		}

		if result.AlreadyInitialized {
			if isJSON() {
				return printJSON(result)
			}
			fmt.Printf("Warning: plan already initialized (%d task(s) in %s); nothing changed\n",
				result.TaskCount, result.FilePath)
			return nil
		}

		created, err := config.WriteProjectFile(storeFs, config.GetConfigFilePath(), config.ProjectFile{
			Project: config.ProjectSection{
				Plan:      s.Metadata().PlanName,
				Framework: initFramework,
				Deps:      initDeps,
			},
		})
		if err != nil {
			return err
		}

		if isJSON() {
			return printJSON(struct {
				store.InitResult
				ConfigCreated bool `json:"configCreated"`
			}{result, created})
		}
		fmt.Printf("✓ Initialized plan %q for %s\n", s.Metadata().PlanName, s.Metadata().Platform)
		fmt.Printf("  Task file: %s\n", result.FilePath)
		if created {
			fmt.Printf("  Config:    %s\n", config.GetConfigFilePath())
		}
		return nil
	},
}

var projectValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the current plan's task collection",
	Long: `Run every check over the plan: field constraints, duplicate IDs,
dangling dependencies, circular dependencies, and consistency warnings.
All findings are reported in one pass; the exit code is non-zero only
when at least one error-severity issue exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := getStore()
		if err != nil {
			return err
		}

		issues := s.Validate()

		if isJSON() {
			if err := printJSON(issues); err != nil {
				return err
			}
		} else if len(issues) == 0 {
			fmt.Println("✓ All tasks valid")
		} else {
			fmt.Print(ui.RenderIssues(issues))
		}

		if models.HasErrors(issues) {
			errCount := 0
			for _, issue := range issues {
				if issue.Severity == models.SeverityError {
					errCount++
				}
			}
			return fmt.Errorf("validation failed with %d error(s)", errCount)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectInitCmd)
	projectCmd.AddCommand(projectValidateCmd)

	projectInitCmd.Flags().StringVar(&initFramework, "framework", "", "framework recorded in the project config")
	projectInitCmd.Flags().StringSliceVar(&initDeps, "deps", nil, "project dependencies recorded in the config")
}
