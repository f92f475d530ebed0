package cmd

import (
	"errors"
	"testing"

	"github.com/josephgoksu/planwing/models"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// setupCmdTest gives each test a clean viper state and an in-memory
// filesystem for the store layer.
func setupCmdTest(t *testing.T) afero.Fs {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	fs := afero.NewMemMapFs()
	prev := storeFs
	storeFs = fs
	t.Cleanup(func() { storeFs = prev })

	viper.Set("project.rootDir", ".planwing")
	viper.Set("project.tasksDir", "tasks")
	return fs
}

func TestResolvePlan(t *testing.T) {
	setupCmdTest(t)

	if got := resolvePlan(); got != "default" {
		t.Errorf("resolvePlan() with nothing set = %q, want %q", got, "default")
	}

	viper.Set("project.plan", "sprint-9")
	if got := resolvePlan(); got != "sprint-9" {
		t.Errorf("resolvePlan() = %q, want %q", got, "sprint-9")
	}
}

func TestResolvePlatform(t *testing.T) {
	setupCmdTest(t)

	if _, err := resolvePlatform(); err == nil {
		t.Error("resolvePlatform() with no platform configured should fail")
	}

	viper.Set("project.platform", "backend")
	platform, err := resolvePlatform()
	if err != nil {
		t.Fatalf("resolvePlatform() error = %v", err)
	}
	if platform != models.PlatformBackend {
		t.Errorf("resolvePlatform() = %q, want %q", platform, models.PlatformBackend)
	}
}

func TestGetStore_RoundTrip(t *testing.T) {
	setupCmdTest(t)
	viper.Set("project.plan", "sprint-1")
	viper.Set("project.platform", "frontend")

	s, err := getStore()
	if err != nil {
		t.Fatalf("getStore() error = %v", err)
	}

	task, err := s.Create(models.TaskCreate{
		Name:      "Build login form",
		Level:     models.LevelHigh,
		Component: "auth",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if task.ID != "fe-0001" {
		t.Errorf("Create() ID = %q, want %q", task.ID, "fe-0001")
	}

	// A fresh store over the same config must see the persisted task.
	s2, err := getStore()
	if err != nil {
		t.Fatalf("getStore() second call error = %v", err)
	}
	if got := len(s2.List()); got != 1 {
		t.Errorf("reloaded store has %d tasks, want 1", got)
	}
}

func TestGetStore_RequiresPlatform(t *testing.T) {
	setupCmdTest(t)
	viper.Set("project.plan", "sprint-1")

	if _, err := getStore(); err == nil {
		t.Error("getStore() without a platform should fail")
	}
}

func TestListRawFile(t *testing.T) {
	fs := setupCmdTest(t)

	line := `{"id":"fe-0001","name":"Build login form","level":"high","component":"auth","ready":true}` + "\n"
	if err := afero.WriteFile(fs, "exported.jsonl", []byte(line), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := listRawFile("exported.jsonl"); err != nil {
		t.Errorf("listRawFile() error = %v", err)
	}

	if err := listRawFile("no-such-file.jsonl"); err == nil {
		t.Error("listRawFile() on a missing file should fail")
	}
}

func TestReportValidation(t *testing.T) {
	setupCmdTest(t)

	verrs := models.ValidationErrors{
		{Severity: models.SeverityError, Field: "name", Message: "name is required"},
		{Severity: models.SeverityError, Field: "level", Message: "level must be one of critical, high, medium, low"},
	}
	err := reportValidation(verrs)
	if err == nil {
		t.Fatal("reportValidation() should return an error for validation failures")
	}
	if got := err.Error(); got != "2 validation issue(s)" {
		t.Errorf("reportValidation() error = %q, want %q", got, "2 validation issue(s)")
	}

	plain := errors.New("disk on fire")
	if got := reportValidation(plain); got != plain {
		t.Errorf("reportValidation() should pass through non-validation errors, got %v", got)
	}
}
