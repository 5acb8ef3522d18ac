package sqlite_test

import (
	"testing"

	"github.com/example/cradle/internal/adapters/sqlite"
	"github.com/example/cradle/internal/ports/secondary"
)

func TestDiaperRepository_CRUDAndLatest(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewDiaperRepository(database)

	first, err := repo.Create(ctx(), &secondary.DiaperRecord{Timestamp: "2024-03-10T07:30:00", Type: "wet"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := repo.Create(ctx(), &secondary.DiaperRecord{Timestamp: "2024-03-10T11:00:00", Type: "both"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	latest, err := repo.Latest(ctx())
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest == nil || latest.ID != second {
		t.Errorf("expected latest %d, got %+v", second, latest)
	}

	err = repo.Update(ctx(), &secondary.DiaperRecord{ID: first, Timestamp: "2024-03-10T07:45:00", Type: "solid"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	records, err := repo.ListByRange(ctx(), "2024-03-10T00:00:00", "2024-03-11T00:00:00")
	if err != nil {
		t.Fatalf("ListByRange failed: %v", err)
	}
	if len(records) != 2 || records[0].Type != "solid" {
		t.Errorf("unexpected records: %+v", records)
	}

	if err := repo.Delete(ctx(), first); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(ctx(), first); err == nil {
		t.Error("expected error deleting a missing record")
	}
}

func TestDiaperRepository_TypeConstraint(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewDiaperRepository(database)

	if _, err := repo.Create(ctx(), &secondary.DiaperRecord{Timestamp: "2024-03-10T07:30:00", Type: "dry"}); err == nil {
		t.Fatal("expected CHECK constraint to reject an unknown type")
	}
}
