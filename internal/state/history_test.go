package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"crewplan/pkg/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func sampleRecord(id string, at time.Time) *Record {
	b := &models.Breakdown{
		ID:          id,
		ProjectName: "a mobile fitness app",
		Roles: models.RoleTaskList{}.
			Append("Frontend Developer", "Build the workout screens", "Add the social feed").
			Append("Backend Developer", "Design the workout schema"),
		GeneratedAt: at,
	}
	b.Recompute()
	return &Record{Breakdown: b, Strategy: "line", UsedFallback: false}
}

func TestSaveAndGetBreakdown(t *testing.T) {
	db := openTestDB(t)

	want := sampleRecord("bd-1", time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))
	if err := db.SaveBreakdown(want); err != nil {
		t.Fatalf("SaveBreakdown: %v", err)
	}

	got, err := db.GetBreakdown("bd-1")
	if err != nil {
		t.Fatalf("GetBreakdown: %v", err)
	}
	if got == nil {
		t.Fatal("GetBreakdown returned nil for stored ID")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestGetBreakdown_Missing(t *testing.T) {
	db := openTestDB(t)

	got, err := db.GetBreakdown("no-such-id")
	if err != nil {
		t.Fatalf("GetBreakdown: %v", err)
	}
	if got != nil {
		t.Errorf("GetBreakdown = %+v, want nil for unknown ID", got)
	}
}

func TestSaveBreakdown_RequiresID(t *testing.T) {
	db := openTestDB(t)

	rec := &Record{Breakdown: &models.Breakdown{}}
	if err := db.SaveBreakdown(rec); err == nil {
		t.Error("SaveBreakdown accepted a record without an ID")
	}
}

func TestListBreakdowns_NewestFirst(t *testing.T) {
	db := openTestDB(t)

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"bd-old", "bd-mid", "bd-new"} {
		rec := sampleRecord(id, base.Add(time.Duration(i)*time.Hour))
		if err := db.SaveBreakdown(rec); err != nil {
			t.Fatalf("SaveBreakdown(%s): %v", id, err)
		}
	}

	records, err := db.ListBreakdowns(0)
	if err != nil {
		t.Fatalf("ListBreakdowns: %v", err)
	}
	var ids []string
	for _, r := range records {
		ids = append(ids, r.Breakdown.ID)
	}
	want := []string{"bd-new", "bd-mid", "bd-old"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	limited, err := db.ListBreakdowns(2)
	if err != nil {
		t.Fatalf("ListBreakdowns(2): %v", err)
	}
	if len(limited) != 2 || limited[0].Breakdown.ID != "bd-new" {
		t.Errorf("limited list = %d records starting %q, want 2 starting bd-new",
			len(limited), limited[0].Breakdown.ID)
	}
}

func TestDeleteBreakdown(t *testing.T) {
	db := openTestDB(t)

	rec := sampleRecord("bd-del", time.Now().UTC())
	if err := db.SaveBreakdown(rec); err != nil {
		t.Fatalf("SaveBreakdown: %v", err)
	}
	if err := db.DeleteBreakdown("bd-del"); err != nil {
		t.Fatalf("DeleteBreakdown: %v", err)
	}

	got, err := db.GetBreakdown("bd-del")
	if err != nil {
		t.Fatalf("GetBreakdown: %v", err)
	}
	if got != nil {
		t.Error("breakdown still present after delete")
	}
}

func TestPurgeOldBreakdowns(t *testing.T) {
	db := openTestDB(t)

	old := sampleRecord("bd-ancient", time.Now().UTC().Add(-90*24*time.Hour))
	recent := sampleRecord("bd-recent", time.Now().UTC())
	for _, rec := range []*Record{old, recent} {
		if err := db.SaveBreakdown(rec); err != nil {
			t.Fatalf("SaveBreakdown: %v", err)
		}
	}

	n, err := db.PurgeOldBreakdowns(30 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("PurgeOldBreakdowns: %v", err)
	}
	if n != 1 {
		t.Errorf("purged %d rows, want 1", n)
	}

	if got, _ := db.GetBreakdown("bd-recent"); got == nil {
		t.Error("recent breakdown was purged")
	}
	if got, _ := db.GetBreakdown("bd-ancient"); got != nil {
		t.Error("old breakdown survived the purge")
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := db.Migrate(); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}
