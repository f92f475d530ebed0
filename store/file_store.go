package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/josephgoksu/planwing/models"
	"github.com/spf13/afero"
)

// FileTaskStore implements TaskStore over a single line-oriented JSON file:
// one task per line, in insertion order. The whole file is read on Load and
// rewritten on every mutation. Not safe for concurrent invocation against
// the same plan; the accepted contract is one writer at a time.
type FileTaskStore struct {
	fs       afero.Fs
	dir      string
	meta     models.Metadata
	tasks    []models.Task
	loaded   bool
	fileSeen bool
	skipped  []LoadError
}

// LoadError records one malformed line skipped during Load.
type LoadError struct {
	Line int
	Err  error
}

func (e LoadError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// InitResult reports what Init did.
type InitResult struct {
	AlreadyInitialized bool
	TaskCount          int
	FilePath           string
}

// NewFileTaskStore constructs a store for an explicit (planName, platform)
// pair. Both are required: platform identity affects ID allocation and must
// never be satisfied by a fallback derived from loaded state.
func NewFileTaskStore(fs afero.Fs, dir, planName string, platform models.Platform) (*FileTaskStore, error) {
	if planName == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if platform != models.PlatformFrontend && platform != models.PlatformBackend {
		return nil, fmt.Errorf("unknown platform %q", platform)
	}
	return &FileTaskStore{
		fs:  fs,
		dir: dir,
		meta: models.Metadata{
			PlanName: planName,
			Platform: platform,
		},
	}, nil
}

// Metadata returns the constructor-supplied plan identity.
func (s *FileTaskStore) Metadata() models.Metadata {
	return s.meta
}

// FilePath returns the backing file for this plan+platform pair.
func (s *FileTaskStore) FilePath() string {
	return filepath.Join(s.dir, TaskFileName(s.meta.PlanName, s.meta.Platform))
}

// TaskFileName builds the on-disk name for a plan's task file.
func TaskFileName(planName string, platform models.Platform) string {
	return fmt.Sprintf("%s.%s.jsonl", planName, platform)
}

// ReadTaskFile reads one task file: one JSON document per line, in file
// order. Malformed lines are skipped and returned alongside the tasks, so
// one corrupt entry never blocks access to the rest of the file.
func ReadTaskFile(fs afero.Fs, path string) ([]models.Task, []LoadError, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read task file %s: %w", path, err)
	}

	var tasks []models.Task
	var skipped []LoadError
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var task models.Task
		if err := json.Unmarshal(line, &task); err != nil {
			skipped = append(skipped, LoadError{Line: lineNo, Err: err})
			continue
		}
		tasks = append(tasks, task)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to scan task file %s: %w", path, err)
	}
	return tasks, skipped, nil
}

// Load reads the backing file. A missing file means "no tasks yet", not an
// error.
func (s *FileTaskStore) Load() error {
	s.tasks = nil
	s.skipped = nil
	s.loaded = true

	if exists, err := afero.Exists(s.fs, s.FilePath()); err == nil && !exists {
		s.fileSeen = false
		return nil
	}

	tasks, skipped, err := ReadTaskFile(s.fs, s.FilePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.fileSeen = false
			return nil
		}
		return err
	}
	s.fileSeen = true
	s.tasks = tasks
	s.skipped = skipped
	return nil
}

// Skipped returns the malformed lines encountered by the last Load.
func (s *FileTaskStore) Skipped() []LoadError {
	return s.skipped
}

func (s *FileTaskStore) ensureLoaded() error {
	if s.loaded {
		return nil
	}
	return s.Load()
}

// save rewrites the whole collection, writing to a temp file first and
// renaming over the target so a failed write never truncates the plan.
func (s *FileTaskStore) save() error {
	if s.dir != "" {
		if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
			return fmt.Errorf("failed to create tasks directory %s: %w", s.dir, err)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, task := range s.tasks {
		if err := enc.Encode(task); err != nil {
			return fmt.Errorf("failed to encode task %s: %w", task.ID, err)
		}
	}

	target := s.FilePath()
	tmp := target + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write temporary task file %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, target); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to replace task file %s: %w", target, err)
	}
	s.fileSeen = true
	return nil
}

// NextID allocates the next ID using the stored constructor platform. The
// platform is deliberately not read back from persisted data: deriving it
// from partially-loaded state silently mis-prefixes new records.
func (s *FileTaskStore) NextID() string {
	ids := make([]string, 0, len(s.tasks))
	for _, t := range s.tasks {
		ids = append(ids, t.ID)
	}
	return models.NextID(s.meta.Platform, ids)
}

// Create validates the payload, allocates an ID, applies creation defaults
// and persists the collection. All validation issues are returned together.
func (s *FileTaskStore) Create(payload models.TaskCreate) (models.Task, error) {
	if err := s.ensureLoaded(); err != nil {
		return models.Task{}, err
	}

	issues := payload.Validate()
	issues = append(issues, s.checkDependenciesExist(payload.Dependencies, "")...)
	if len(issues) > 0 {
		return models.Task{}, models.ValidationErrors(issues)
	}

	task := models.NewTask(s.NextID(), payload)
	s.tasks = append(s.tasks, task)

	if err := s.save(); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return models.Task{}, fmt.Errorf("failed to save new task: %w", err)
	}
	return task, nil
}

// Update merges the payload over an existing task and persists. The task ID
// is immutable; the payload has no ID field by construction.
func (s *FileTaskStore) Update(id string, payload models.TaskUpdate) (models.Task, error) {
	if err := s.ensureLoaded(); err != nil {
		return models.Task{}, err
	}
	if !s.fileSeen {
		return models.Task{}, &models.PlanNotInitializedError{PlanName: s.meta.PlanName, Platform: s.meta.Platform}
	}

	idx := -1
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Task{}, &models.NotFoundError{ID: id}
	}

	merged := payload.ApplyTo(s.tasks[idx])
	merged.UpdatedAt = time.Now().UTC()
	issues := models.ValidateTask(merged)
	if payload.Dependencies != nil {
		issues = append(issues, s.checkDependenciesExist(*payload.Dependencies, id)...)
	}
	if len(issues) > 0 {
		return models.Task{}, models.ValidationErrors(issues)
	}

	original := s.tasks[idx]
	s.tasks[idx] = merged
	if err := s.save(); err != nil {
		s.tasks[idx] = original
		return models.Task{}, fmt.Errorf("failed to save updated task: %w", err)
	}
	return merged, nil
}

// Get returns one task by ID.
func (s *FileTaskStore) Get(id string) (models.Task, error) {
	if err := s.ensureLoaded(); err != nil {
		return models.Task{}, err
	}
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, &models.NotFoundError{ID: id}
}

// List returns all tasks in stored order.
func (s *FileTaskStore) List() []models.Task {
	if err := s.ensureLoaded(); err != nil {
		return nil
	}
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Init bootstraps the plan's backing file. Re-initialization over a plan
// that already holds tasks is a no-op reported to the caller, never a
// silent success and never an overwrite.
func (s *FileTaskStore) Init() (InitResult, error) {
	if err := s.ensureLoaded(); err != nil {
		return InitResult{}, err
	}

	if s.fileSeen && len(s.tasks) > 0 {
		return InitResult{
			AlreadyInitialized: true,
			TaskCount:          len(s.tasks),
			FilePath:           s.FilePath(),
		}, nil
	}

	if err := s.save(); err != nil {
		return InitResult{}, fmt.Errorf("failed to create task file: %w", err)
	}
	return InitResult{FilePath: s.FilePath()}, nil
}

// checkDependenciesExist reports one issue per referenced ID missing from
// the collection. selfID, when non-empty, additionally rejects
// self-dependencies at write time.
func (s *FileTaskStore) checkDependenciesExist(deps []string, selfID string) []models.ValidationIssue {
	if len(deps) == 0 {
		return nil
	}
	known := make(map[string]bool, len(s.tasks))
	for _, t := range s.tasks {
		known[t.ID] = true
	}
	var issues []models.ValidationIssue
	for _, dep := range deps {
		if selfID != "" && dep == selfID {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityError,
				TaskID:   selfID,
				Field:    "dependencies",
				Message:  fmt.Sprintf("task %s cannot depend on itself", selfID),
			})
			continue
		}
		if !known[dep] {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityError,
				TaskID:   selfID,
				Field:    "dependencies",
				Message:  fmt.Sprintf("dependency %s does not exist in this plan", dep),
			})
		}
	}
	return issues
}
