package settings

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/termjournal/internal/cli"
	"github.com/julianstephens/termjournal/internal/models"
	"github.com/julianstephens/termjournal/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return &cli.Context{Store: store}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestSettingsCmd_List(t *testing.T) {
	ctx := setupTestDB(t)
	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Errorf("settings list failed: %v", err)
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx := setupTestDB(t)

	cmd := &SettingsCmd{
		AutosaveInterval:      intPtr(2),
		DefaultView:           strPtr("today"),
		BackupDir:             strPtr("/tmp/journal-backups"),
		MistakeAlertThreshold: intPtr(4),
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	got, err := ctx.Store.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	want := models.Settings{
		AutosaveIntervalMin:   2,
		DefaultView:           "today",
		BackupDir:             "/tmp/journal-backups",
		MistakeAlertThreshold: 4,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsCmd_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		cmd  SettingsCmd
	}{
		{"zero interval", SettingsCmd{AutosaveInterval: intPtr(0)}},
		{"unknown view", SettingsCmd{DefaultView: strPtr("week")}},
		{"zero threshold", SettingsCmd{MistakeAlertThreshold: intPtr(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := setupTestDB(t)
			if err := tt.cmd.Run(ctx); err == nil {
				t.Fatal("expected a validation error")
			}
			got, err := ctx.Store.GetSettings(context.Background())
			if err != nil {
				t.Fatalf("GetSettings failed: %v", err)
			}
			if diff := cmp.Diff(models.DefaultSettings(), got); diff != "" {
				t.Errorf("settings changed despite the error (-want +got):\n%s", diff)
			}
		})
	}
}
