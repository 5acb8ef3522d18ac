package sqlite_test

import (
	"strings"
	"testing"

	"github.com/example/cradle/internal/adapters/sqlite"
	"github.com/example/cradle/internal/ports/secondary"
)

func TestSleepRepository_CreateAndGet(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewSleepRepository(database)

	id, err := repo.Create(ctx(), &secondary.SleepRecord{
		Type:      "nap",
		StartTime: "2024-03-10T13:00:00",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx(), id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Type != "nap" || got.StartTime != "2024-03-10T13:00:00" {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.EndTime != "" {
		t.Errorf("expected open interval, got end %q", got.EndTime)
	}
}

func TestSleepRepository_GetOpenAndEnd(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewSleepRepository(database)

	open, err := repo.GetOpen(ctx())
	if err != nil {
		t.Fatalf("GetOpen failed: %v", err)
	}
	if open != nil {
		t.Fatalf("expected no open interval, got %+v", open)
	}

	id := seedSleep(t, database, "night", "2024-03-09T21:00:00", "")

	open, err = repo.GetOpen(ctx())
	if err != nil {
		t.Fatalf("GetOpen failed: %v", err)
	}
	if open == nil || open.ID != id {
		t.Fatalf("expected open interval %d, got %+v", id, open)
	}

	if err := repo.End(ctx(), id, "2024-03-10T07:00:00"); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	got, err := repo.GetByID(ctx(), id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.EndTime != "2024-03-10T07:00:00" {
		t.Errorf("expected end time set, got %q", got.EndTime)
	}

	// Ending an already-closed interval must fail.
	if err := repo.End(ctx(), id, "2024-03-10T08:00:00"); err == nil {
		t.Error("expected error when ending a closed interval")
	}
}

func TestSleepRepository_SecondOpenIntervalRejected(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewSleepRepository(database)

	if _, err := repo.Create(ctx(), &secondary.SleepRecord{
		Type:      "nap",
		StartTime: "2024-03-10T13:00:00",
	}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// The partial unique index enforces "at most one open interval" at the
	// store, closing the check-then-insert race.
	_, err := repo.Create(ctx(), &secondary.SleepRecord{
		Type:      "night",
		StartTime: "2024-03-10T19:00:00",
	})
	if err == nil {
		t.Fatal("expected second open interval to be rejected")
	}
	if !strings.Contains(err.Error(), "failed to create sleep interval") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSleepRepository_ListOverlapping(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewSleepRepository(database)

	// Night crossing into the window, nap inside, nap after, open nap.
	crossing := seedSleep(t, database, "night", "2024-03-09T21:00:00", "2024-03-10T07:00:00")
	inside := seedSleep(t, database, "nap", "2024-03-10T13:00:00", "2024-03-10T14:00:00")
	seedSleep(t, database, "nap", "2024-03-11T09:00:00", "2024-03-11T10:00:00")
	open := seedSleep(t, database, "nap", "2024-03-10T16:00:00", "")

	records, err := repo.ListOverlapping(ctx(), "2024-03-10T00:00:00", "2024-03-11T00:00:00")
	if err != nil {
		t.Fatalf("ListOverlapping failed: %v", err)
	}

	want := map[int64]bool{crossing: true, inside: true, open: true}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for _, rec := range records {
		if !want[rec.ID] {
			t.Errorf("unexpected record %d in window", rec.ID)
		}
	}
}

func TestSleepRepository_LatestEnded(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewSleepRepository(database)

	latest, err := repo.LatestEnded(ctx())
	if err != nil {
		t.Fatalf("LatestEnded failed: %v", err)
	}
	if latest != nil {
		t.Fatalf("expected nil with no ended intervals, got %+v", latest)
	}

	seedSleep(t, database, "night", "2024-03-09T21:00:00", "2024-03-10T07:00:00")
	want := seedSleep(t, database, "nap", "2024-03-10T13:00:00", "2024-03-10T14:00:00")
	seedSleep(t, database, "nap", "2024-03-10T16:00:00", "")

	latest, err = repo.LatestEnded(ctx())
	if err != nil {
		t.Fatalf("LatestEnded failed: %v", err)
	}
	if latest == nil || latest.ID != want {
		t.Errorf("expected record %d, got %+v", want, latest)
	}
}

func TestSleepRepository_UpdateAndDelete(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewSleepRepository(database)

	id := seedSleep(t, database, "nap", "2024-03-10T13:00:00", "2024-03-10T14:00:00")

	err := repo.Update(ctx(), &secondary.SleepRecord{
		ID:        id,
		Type:      "night",
		StartTime: "2024-03-10T19:30:00",
		EndTime:   "2024-03-11T06:30:00",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := repo.GetByID(ctx(), id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Type != "night" || got.StartTime != "2024-03-10T19:30:00" || got.EndTime != "2024-03-11T06:30:00" {
		t.Errorf("unexpected record after update: %+v", got)
	}

	if err := repo.Delete(ctx(), id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx(), id); err == nil {
		t.Error("expected error after delete")
	}
	if err := repo.Delete(ctx(), id); err == nil {
		t.Error("expected error deleting a missing record")
	}
}
