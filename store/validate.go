package store

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/planwing/models"
)

// Validate runs field-level and graph-level checks across the whole stored
// collection. It never stops at the first problem: the returned slice holds
// every issue found, each tagged with a severity. Traversal follows stored
// order so messages are reproducible.
func (s *FileTaskStore) Validate() []models.ValidationIssue {
	if err := s.ensureLoaded(); err != nil {
		return []models.ValidationIssue{{
			Severity: models.SeverityError,
			Message:  fmt.Sprintf("failed to load plan: %v", err),
		}}
	}
	issues := validateCollection(s.tasks, s.meta.Platform)
	for _, skip := range s.skipped {
		issues = append(issues, models.ValidationIssue{
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("skipped malformed entry at %v", skip),
		})
	}
	return issues
}

// validateCollection checks a task set independent of any backing file.
func validateCollection(tasks []models.Task, platform models.Platform) []models.ValidationIssue {
	var issues []models.ValidationIssue

	// Duplicate IDs and per-task field constraints.
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityError,
				TaskID:   t.ID,
				Field:    "id",
				Message:  fmt.Sprintf("duplicate task ID %s", t.ID),
			})
		}
		seen[t.ID] = true
		issues = append(issues, models.ValidateTask(t)...)

		// An ID carrying the wrong prefix is a symptom of the file being
		// edited by hand or written by a misconfigured store.
		if parsed := models.ParseID(t.ID); parsed != nil && parsed.Platform != platform {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityWarning,
				TaskID:   t.ID,
				Field:    "id",
				Message:  fmt.Sprintf("ID %s carries the %s prefix but the plan is %s", t.ID, parsed.Platform, platform),
			})
		}
	}

	byID := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	// Dangling references are their own issue kind; a dependency on a
	// nonexistent task is not a cycle.
	for _, t := range tasks {
		for _, dep := range t.Dependencies {
			if _, ok := byID[dep]; !ok {
				issues = append(issues, models.ValidationIssue{
					Severity: models.SeverityError,
					TaskID:   t.ID,
					Field:    "dependencies",
					Message:  fmt.Sprintf("task %s depends on unknown task %s", t.ID, dep),
				})
			}
		}
	}

	issues = append(issues, detectCycles(tasks, byID)...)

	// A done task resting on undone work is suspicious but not fatal.
	for _, t := range tasks {
		if !t.Done {
			continue
		}
		for _, dep := range t.Dependencies {
			if depTask, ok := byID[dep]; ok && !depTask.Done {
				issues = append(issues, models.ValidationIssue{
					Severity: models.SeverityWarning,
					TaskID:   t.ID,
					Field:    "done",
					Message:  fmt.Sprintf("task %s is done but its dependency %s is not", t.ID, dep),
				})
			}
		}
	}

	return issues
}

// detectCycles runs a depth-first traversal from every task in supplied
// order, tracking the nodes on the current path. Reaching a node already on
// the path records one cycle issue naming the full path (closing node
// repeated) and stops descending that branch; traversal then continues so
// independent cycles are all found in the same pass. Nodes visited once are
// not re-traversed from later outer-loop starts, which keeps each cycle
// reported exactly once without changing which cycles are found.
func detectCycles(tasks []models.Task, byID map[string]models.Task) []models.ValidationIssue {
	var issues []models.ValidationIssue
	visited := make(map[string]bool, len(tasks))
	onPath := make(map[string]bool, len(tasks))

	var dfs func(id string, path []string)
	dfs = func(id string, path []string) {
		visited[id] = true
		onPath[id] = true
		path = append(path, id)

		for _, dep := range byID[id].Dependencies {
			if _, ok := byID[dep]; !ok {
				// Reported separately as a dangling reference.
				continue
			}
			if onPath[dep] {
				issues = append(issues, models.ValidationIssue{
					Severity: models.SeverityError,
					TaskID:   id,
					Field:    "dependencies",
					Message:  fmt.Sprintf("circular dependency: %s", strings.Join(append(path, dep), " -> ")),
				})
				continue
			}
			if !visited[dep] {
				dfs(dep, path)
			}
		}

		onPath[id] = false
	}

	for _, t := range tasks {
		if !visited[t.ID] {
			dfs(t.ID, nil)
		}
	}
	return issues
}
