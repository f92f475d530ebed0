package store

import "github.com/josephgoksu/planwing/models"

// TaskStore defines the contract for task persistence for one
// (planName, platform) pair. A store owns its in-memory collection for the
// lifetime of one CLI invocation; there is no shared state across
// invocations beyond the backing file and no concurrent-writer protocol
// (last write wins).
type TaskStore interface {
	// Metadata returns the plan name and platform the store was
	// constructed with.
	Metadata() models.Metadata

	// Load reads the backing file into memory. A missing file is not an
	// error; it yields an empty collection. Individual malformed entries
	// are skipped, not fatal.
	Load() error

	// NextID computes the next task ID for the store's platform from the
	// IDs currently in memory.
	NextID() string

	// Create validates the payload, allocates an ID, applies creation
	// defaults, persists and returns the new task. On validation failure
	// it returns a models.ValidationErrors carrying every issue.
	Create(payload models.TaskCreate) (models.Task, error)

	// Update merges the payload over an existing task, validates the
	// result, persists and returns it. Returns *models.NotFoundError when
	// the ID is absent and *models.PlanNotInitializedError when the plan's
	// file has never been created.
	Update(id string, payload models.TaskUpdate) (models.Task, error)

	// Get returns a single task by ID or *models.NotFoundError.
	Get(id string) (models.Task, error)

	// List returns all tasks in stored order.
	List() []models.Task

	// Init bootstraps the plan. It is idempotent: re-running it against a
	// plan that already holds tasks performs no mutation and reports that
	// fact so the caller can warn.
	Init() (InitResult, error)

	// Validate runs field-level and graph-level checks across the whole
	// collection and returns every issue found, each tagged with a
	// severity.
	Validate() []models.ValidationIssue
}
