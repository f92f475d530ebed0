package cmd

import (
	"errors"
	"fmt"

	"github.com/josephgoksu/planwing/internal/config"
	"github.com/josephgoksu/planwing/internal/ui"
	"github.com/josephgoksu/planwing/models"
	"github.com/josephgoksu/planwing/store"
	"github.com/spf13/cobra"
)

// taskCmd groups the task-level subcommands.
var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Create, update and inspect tasks",
}

var (
	createName      string
	createLevel     string
	createComponent string
	createEffort    string
	createNotReady  bool
	createDone      bool
	createDeps      []string
)

var taskCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new task",
	Long: `Create a task in the current plan. The ID is allocated by the store
(fe-0001, fe-0002, ... on frontend; be-#### on backend) and can never be
supplied by hand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := getStore()
		if err != nil {
			return err
		}

		payload := models.TaskCreate{
			Name:         createName,
			Level:        models.TaskLevel(createLevel),
			Component:    createComponent,
			Effort:       models.TaskEffort(createEffort),
			NotReady:     createNotReady,
			Done:         createDone,
			Dependencies: createDeps,
		}

		task, err := s.Create(payload)
		if err != nil {
			return reportValidation(err)
		}

		if isJSON() {
			return printJSON(task)
		}
		fmt.Printf("✓ Created %s\n\n", task.ID)
		fmt.Print(ui.RenderTaskDetail(task))
		return nil
	},
}

var (
	updateName      string
	updateLevel     string
	updateComponent string
	updateEffort    string
	updateReady     bool
	updateDone      bool
	updateDeps      []string
)

var taskUpdateCmd = &cobra.Command{
	Use:   "update <task_id>",
	Short: "Update fields of an existing task",
	Long: `Update an existing task. Only flags explicitly set are applied; the
task ID is immutable.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := getStore()
		if err != nil {
			return err
		}

		var payload models.TaskUpdate
		flags := cmd.Flags()
		if flags.Changed("name") {
			payload.Name = &updateName
		}
		if flags.Changed("level") {
			level := models.TaskLevel(updateLevel)
			payload.Level = &level
		}
		if flags.Changed("component") {
			payload.Component = &updateComponent
		}
		if flags.Changed("effort") {
			effort := models.TaskEffort(updateEffort)
			payload.Effort = &effort
		}
		if flags.Changed("ready") {
			payload.Ready = &updateReady
		}
		if flags.Changed("done") {
			payload.Done = &updateDone
		}
		if flags.Changed("depends-on") {
			payload.Dependencies = &updateDeps
		}

		task, err := s.Update(args[0], payload)
		if err != nil {
			return reportValidation(err)
		}

		if isJSON() {
			return printJSON(task)
		}
		fmt.Printf("✓ Updated %s\n\n", task.ID)
		fmt.Print(ui.RenderTaskDetail(task))
		return nil
	},
}

var listFile string

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tasks of the current plan",
	Long: `List all tasks for the resolved (plan, platform) pair.

With --file, reads an arbitrary task file instead; the plan and platform
are then recovered from the file name, falling back to "unknown" when the
name does not fit the <plan>.<platform>.jsonl scheme.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listFile != "" {
			return listRawFile(listFile)
		}

		s, err := getStore()
		if err != nil {
			return err
		}
		meta := s.Metadata()
		tasks := s.List()

		if isJSON() {
			return printJSON(struct {
				Metadata models.Metadata `json:"metadata"`
				Tasks    []models.Task   `json:"tasks"`
			}{meta, tasks})
		}
		fmt.Print(ui.RenderTaskList(meta.PlanName, string(meta.Platform), tasks))
		return nil
	},
}

// listRawFile lists a task file opened without explicit metadata. Display
// metadata comes from the filename fallback and is shown as the "unknown"
// literal when unparsable, never silently omitted.
func listRawFile(path string) error {
	tasks, skipped, err := store.ReadTaskFile(storeFs, path)
	if err != nil {
		return err
	}
	for _, skip := range skipped {
		LogError("skipped malformed task entry", skip)
	}

	planName, platform := config.ParseTaskFileName(path)
	if isJSON() {
		return printJSON(struct {
			PlanName string        `json:"planName"`
			Platform string        `json:"platform"`
			Tasks    []models.Task `json:"tasks"`
		}{planName, platform, tasks})
	}
	fmt.Print(ui.RenderTaskList(planName, platform, tasks))
	return nil
}

var taskDetailCmd = &cobra.Command{
	Use:   "detail <task_id>",
	Short: "Show details for a single task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := getStore()
		if err != nil {
			return err
		}
		task, err := s.Get(args[0])
		if err != nil {
			return err
		}
		if isJSON() {
			return printJSON(task)
		}
		fmt.Print(ui.RenderTaskDetail(task))
		return nil
	},
}

// reportValidation prints the full issue list of a validation failure
// before returning the error, so the caller sees every problem at once.
// Other errors pass through untouched.
func reportValidation(err error) error {
	var verrs models.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	if isJSON() {
		_ = printJSON(verrs)
	} else {
		fmt.Print(ui.RenderIssues(verrs))
	}
	return fmt.Errorf("%d validation issue(s)", len(verrs))
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskDetailCmd)

	taskCreateCmd.Flags().StringVar(&createName, "name", "", "task name (required)")
	taskCreateCmd.Flags().StringVar(&createLevel, "level", "", "priority: critical, high, medium or low (required)")
	taskCreateCmd.Flags().StringVar(&createComponent, "component", "", "component the task belongs to (required)")
	taskCreateCmd.Flags().StringVar(&createEffort, "effort", "", "effort estimate: S, M, L or XL")
	taskCreateCmd.Flags().BoolVar(&createNotReady, "not-ready", false, "mark the task as not ready to start")
	taskCreateCmd.Flags().BoolVar(&createDone, "done", false, "create the task already done")
	taskCreateCmd.Flags().StringSliceVar(&createDeps, "depends-on", nil, "task IDs this task depends on")

	taskUpdateCmd.Flags().StringVar(&updateName, "name", "", "new task name")
	taskUpdateCmd.Flags().StringVar(&updateLevel, "level", "", "new priority")
	taskUpdateCmd.Flags().StringVar(&updateComponent, "component", "", "new component")
	taskUpdateCmd.Flags().StringVar(&updateEffort, "effort", "", "new effort estimate")
	taskUpdateCmd.Flags().BoolVar(&updateReady, "ready", false, "set the ready flag")
	taskUpdateCmd.Flags().BoolVar(&updateDone, "done", false, "set the done flag")
	taskUpdateCmd.Flags().StringSliceVar(&updateDeps, "depends-on", nil, "replace the dependency list")

	taskListCmd.Flags().StringVar(&listFile, "file", "", "read tasks from an explicit file instead of the resolved plan")
}
