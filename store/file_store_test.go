package store

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/josephgoksu/planwing/models"
	"github.com/spf13/afero"
)

func setupTestStore(t *testing.T, platform models.Platform) *FileTaskStore {
	t.Helper()
	s, err := NewFileTaskStore(afero.NewMemMapFs(), ".planwing/tasks", "sprint-1", platform)
	if err != nil {
		t.Fatalf("failed to construct store: %v", err)
	}
	return s
}

func mustCreate(t *testing.T, s *FileTaskStore, name string) models.Task {
	t.Helper()
	task, err := s.Create(models.TaskCreate{Name: name, Level: models.LevelMedium, Component: "core"})
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", name, err)
	}
	return task
}

func TestNewFileTaskStore_RequiresExplicitIdentity(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, err := NewFileTaskStore(fs, "tasks", "", models.PlatformFrontend); err == nil {
		t.Error("empty plan name should be rejected at construction")
	}
	if _, err := NewFileTaskStore(fs, "tasks", "plan", models.Platform("")); err == nil {
		t.Error("empty platform should be rejected at construction")
	}
	if _, err := NewFileTaskStore(fs, "tasks", "plan", models.Platform("mobile")); err == nil {
		t.Error("unknown platform should be rejected at construction")
	}
}

func TestCreate_SequentialIDs(t *testing.T) {
	s := setupTestStore(t, models.PlatformFrontend)

	for i := 1; i <= 5; i++ {
		task := mustCreate(t, s, fmt.Sprintf("task %d", i))
		want := fmt.Sprintf("fe-%04d", i)
		if task.ID != want {
			t.Errorf("task %d ID = %q, want %q", i, task.ID, want)
		}
	}
}

func TestCreate_BackendFreshPlanGetsBackendPrefix(t *testing.T) {
	// Regression guard: the platform comes from the constructor, never from
	// a default inferred while loading an empty file.
	s := setupTestStore(t, models.PlatformBackend)

	task := mustCreate(t, s, "first backend task")
	if task.ID != "be-0001" {
		t.Fatalf("fresh backend plan allocated %q, want be-0001", task.ID)
	}
	if strings.HasPrefix(task.ID, "fe-") {
		t.Fatal("backend plan must never allocate a frontend-prefixed ID")
	}
}

func TestCreate_Defaults(t *testing.T) {
	s := setupTestStore(t, models.PlatformFrontend)

	task := mustCreate(t, s, "defaults")
	if !task.Ready || task.Done {
		t.Errorf("defaults wrong: ready=%v done=%v", task.Ready, task.Done)
	}

	notReady, err := s.Create(models.TaskCreate{Name: "nr", Level: models.LevelLow, Component: "c", NotReady: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if notReady.Ready {
		t.Error("notReady payload should produce ready=false")
	}
}

func TestCreate_ValidationFailureListsEveryIssue(t *testing.T) {
	s := setupTestStore(t, models.PlatformFrontend)

	_, err := s.Create(models.TaskCreate{Level: "sometime", Component: "c"})
	if err == nil {
		t.Fatal("invalid payload should fail")
	}
	var verrs models.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("error should be ValidationErrors, got %T: %v", err, err)
	}
	if len(verrs) != 2 {
		t.Errorf("expected 2 issues (name, level), got %d: %v", len(verrs), verrs)
	}

	// Nothing may be persisted on a failed create.
	if got := s.List(); len(got) != 0 {
		t.Errorf("failed create persisted tasks: %v", got)
	}
}

func TestCreate_RejectsUnknownDependency(t *testing.T) {
	s := setupTestStore(t, models.PlatformFrontend)
	_, err := s.Create(models.TaskCreate{
		Name: "n", Level: models.LevelLow, Component: "c",
		Dependencies: []string{"fe-0099"},
	})
	if err == nil {
		t.Fatal("create with unknown dependency should fail")
	}
}

func TestUpdate(t *testing.T) {
	s := setupTestStore(t, models.PlatformFrontend)
	created := mustCreate(t, s, "original")

	newName := "renamed"
	done := true
	updated, err := s.Update(created.ID, models.TaskUpdate{Name: &newName, Done: &done})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "renamed" || !updated.Done {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.ID != created.ID {
		t.Errorf("ID changed on update: %q", updated.ID)
	}

	// Reload through a fresh store and confirm persistence.
	s2, err := NewFileTaskStore(s.fs, s.dir, "sprint-1", models.PlatformFrontend)
	if err != nil {
		t.Fatalf("failed to construct second store: %v", err)
	}
	got, err := s2.Get(created.ID)
	if err != nil {
		t.Fatalf("Get after reload failed: %v", err)
	}
	if got.Name != "renamed" || !got.Done {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	s := setupTestStore(t, models.PlatformFrontend)
	mustCreate(t, s, "exists")

	name := "x"
	_, err := s.Update("fe-0042", models.TaskUpdate{Name: &name})
	var nf *models.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if nf.ID != "fe-0042" {
		t.Errorf("NotFoundError.ID = %q", nf.ID)
	}
}

func TestUpdate_UninitializedPlanIsExplicitError(t *testing.T) {
	s := setupTestStore(t, models.PlatformFrontend)

	name := "x"
	_, err := s.Update("fe-0001", models.TaskUpdate{Name: &name})
	var pni *models.PlanNotInitializedError
	if !errors.As(err, &pni) {
		t.Fatalf("update on never-initialized plan should surface explicitly, got %T: %v", err, err)
	}
}

func TestUpdate_InvalidMergedResultRejected(t *testing.T) {
	s := setupTestStore(t, models.PlatformFrontend)
	created := mustCreate(t, s, "ok")

	empty := ""
	_, err := s.Update(created.ID, models.TaskUpdate{Name: &empty})
	if err == nil {
		t.Fatal("merging an empty name should fail validation")
	}

	got, err := s.Get(created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "ok" {
		t.Errorf("failed update mutated the task: %+v", got)
	}
}

func TestLoad_MissingFileIsEmptyCollection(t *testing.T) {
	s := setupTestStore(t, models.PlatformFrontend)
	if err := s.Load(); err != nil {
		t.Fatalf("Load of missing file should not error: %v", err)
	}
	if len(s.List()) != 0 {
		t.Errorf("expected empty collection")
	}
}

func TestLoad_SkipsMalformedLines(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := ".planwing/tasks/sprint-1.frontend.jsonl"
	content := `{"id":"fe-0001","name":"good","level":"high","component":"core","ready":true}
this line is not json
{"id":"fe-0002","name":"also good","level":"low","component":"core","ready":true}
`
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s, err := NewFileTaskStore(fs, ".planwing/tasks", "sprint-1", models.PlatformFrontend)
	if err != nil {
		t.Fatalf("construct store: %v", err)
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tasks := s.List()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks around the corrupt line, got %d", len(tasks))
	}
	if tasks[0].ID != "fe-0001" || tasks[1].ID != "fe-0002" {
		t.Errorf("stored order not preserved: %v", tasks)
	}

	skipped := s.Skipped()
	if len(skipped) != 1 {
		t.Fatalf("expected 1 skipped line, got %v", skipped)
	}
	if skipped[0].Line != 2 {
		t.Errorf("skipped line = %d, want 2", skipped[0].Line)
	}

	// NextID still sees the surviving records.
	if got := s.NextID(); got != "fe-0003" {
		t.Errorf("NextID after lenient load = %q, want fe-0003", got)
	}
}

func TestInit_Idempotent(t *testing.T) {
	s := setupTestStore(t, models.PlatformFrontend)

	res, err := s.Init()
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if res.AlreadyInitialized {
		t.Error("fresh init should not report already initialized")
	}

	mustCreate(t, s, "existing work")
	before := s.List()

	res, err = s.Init()
	if err != nil {
		t.Fatalf("re-Init failed: %v", err)
	}
	if !res.AlreadyInitialized {
		t.Error("re-init over a non-empty plan must report already initialized")
	}
	if res.TaskCount != 1 {
		t.Errorf("TaskCount = %d, want 1", res.TaskCount)
	}

	after := s.List()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("re-init mutated the collection: before=%v after=%v", before, after)
	}
}

func TestInit_EmptyFileCanBeReinitialized(t *testing.T) {
	s := setupTestStore(t, models.PlatformFrontend)
	if _, err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	res, err := s.Init()
	if err != nil {
		t.Fatalf("second Init over empty plan failed: %v", err)
	}
	if res.AlreadyInitialized {
		t.Error("empty plan re-init should proceed, not warn")
	}
}

func TestMetadata(t *testing.T) {
	s := setupTestStore(t, models.PlatformBackend)
	meta := s.Metadata()
	if meta.PlanName != "sprint-1" || meta.Platform != models.PlatformBackend {
		t.Errorf("Metadata() = %+v", meta)
	}
}

func TestPlatformsAreIsolatedPerFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	fe, err := NewFileTaskStore(fs, "tasks", "p", models.PlatformFrontend)
	if err != nil {
		t.Fatal(err)
	}
	be, err := NewFileTaskStore(fs, "tasks", "p", models.PlatformBackend)
	if err != nil {
		t.Fatal(err)
	}

	mustCreate(t, fe, "frontend work")
	mustCreate(t, fe, "more frontend work")
	task := mustCreate(t, be, "backend work")

	if task.ID != "be-0001" {
		t.Errorf("backend store allocated %q, want be-0001", task.ID)
	}
	if len(be.List()) != 1 {
		t.Errorf("backend store sees %d tasks, want 1", len(be.List()))
	}
}
