package settings

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/lo3003/studyplanner/internal/cli"
	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/models"
	"github.com/lo3003/studyplanner/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath, constants.DefaultUserID)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{Store: store, Timezone: "UTC"}
	if err := ctx.LoadSettings(); err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, cleanup
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func stringPtr(v string) *string  { return &v }

func TestSettingsCmd_List(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SettingsCmd{List: true}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("settings list failed: %v", err)
	}
}

func TestSettingsCmd_UpdateWorkHours(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SettingsCmd{WorkHours: stringPtr("mon=9-17,sun=20-24")}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	want := map[time.Weekday]models.WorkHours{
		time.Monday: {StartHour: 9, EndHour: 17},
		time.Sunday: {StartHour: 20, EndHour: 24},
	}
	if len(settings.WorkHours) != len(want) {
		t.Fatalf("expected %d work days, got %v", len(want), settings.WorkHours)
	}
	for wd, wh := range want {
		if settings.WorkHours[wd] != wh {
			t.Errorf("%s: expected %v, got %v", wd, wh, settings.WorkHours[wd])
		}
	}
}

func TestSettingsCmd_UpdateNumbers(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SettingsCmd{
		MinSession:        intPtr(25),
		MaxSession:        intPtr(100),
		Break:             intPtr(0),
		Saturation:        floatPtr(0.5),
		PreferredSessions: stringPtr("100,50,25"),
		ImportanceWeight:  floatPtr(3),
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.MinSessionMin != 25 || settings.MaxSessionMin != 100 {
		t.Errorf("expected sessions 25-100, got %d-%d", settings.MinSessionMin, settings.MaxSessionMin)
	}
	if settings.BreakMin != 0 {
		t.Errorf("expected break 0, got %d", settings.BreakMin)
	}
	if settings.SaturationThreshold != 0.5 {
		t.Errorf("expected saturation 0.5, got %v", settings.SaturationThreshold)
	}
	if len(settings.PreferredSessionMins) != 3 || settings.PreferredSessionMins[0] != 100 {
		t.Errorf("unexpected preferred sessions %v", settings.PreferredSessionMins)
	}
	if settings.PriorityImportanceWt != 3 {
		t.Errorf("expected importance weight 3, got %v", settings.PriorityImportanceWt)
	}
}

func TestSettingsCmd_RejectsInvalidPolicy(t *testing.T) {
	tests := []struct {
		name string
		cmd  SettingsCmd
	}{
		{"min above max", SettingsCmd{MinSession: intPtr(150), MaxSession: intPtr(60)}},
		{"zero session", SettingsCmd{MinSession: intPtr(0)}},
		{"negative break", SettingsCmd{Break: intPtr(-5)}},
		{"saturation above one", SettingsCmd{Saturation: floatPtr(1.5)}},
		{"zero epsilon", SettingsCmd{SlackEpsilon: floatPtr(0)}},
		{"bad timezone", SettingsCmd{Timezone: stringPtr("Nowhere/Land")}},
		{"bad work hours", SettingsCmd{WorkHours: stringPtr("mon=18-10")}},
		{"bad preferred sessions", SettingsCmd{PreferredSessions: stringPtr("60,-1")}},
		{"cap below session", SettingsCmd{MaxStudyPerDay: intPtr(10)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cleanup := setupTestDB(t)
			defer cleanup()

			before, _ := ctx.Store.GetSettings()
			if err := tt.cmd.Run(ctx); err == nil {
				t.Fatal("expected an error")
			}
			after, _ := ctx.Store.GetSettings()
			if after.MinSessionMin != before.MinSessionMin || after.Timezone != before.Timezone {
				t.Error("settings changed despite the error")
			}
		})
	}
}
