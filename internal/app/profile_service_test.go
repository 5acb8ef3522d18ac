package app

import (
	"context"
	"testing"

	"github.com/example/cradle/internal/ports/primary"
	"github.com/example/cradle/internal/ports/secondary"
)

func newTestProfileService() (*ProfileServiceImpl, *mockBabyRepo) {
	babies := &mockBabyRepo{}
	service := NewProfileService(babies, testParser(), testLogger(), fixedNow)
	return service, babies
}

func TestGetProfile_CreatesDefault(t *testing.T) {
	service, babies := newTestProfileService()
	ctx := context.Background()

	profile, err := service.GetProfile(ctx)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if profile.Name != "Baby" {
		t.Errorf("expected default name 'Baby', got %q", profile.Name)
	}
	if profile.BirthDate != "2023-09-12" {
		t.Errorf("expected default birth date 2023-09-12, got %s", profile.BirthDate)
	}
	if profile.AgeMonths != 5 {
		t.Errorf("expected age 5 months, got %d", profile.AgeMonths)
	}
	if babies.record == nil {
		t.Error("expected the default profile to be persisted")
	}
}

func TestGetProfile_ReturnsStored(t *testing.T) {
	service, babies := newTestProfileService()
	ctx := context.Background()

	babies.record = &secondary.BabyRecord{Name: "Mara", BirthDate: "2023-08-15"}

	profile, err := service.GetProfile(ctx)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if profile.Name != "Mara" {
		t.Errorf("expected name 'Mara', got %q", profile.Name)
	}
	if profile.AgeMonths != 6 {
		t.Errorf("expected age 6 months, got %d", profile.AgeMonths)
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	service, babies := newTestProfileService()
	ctx := context.Background()

	profile, err := service.UpdateProfile(ctx, primary.UpdateProfileRequest{
		Name:      "Mara",
		BirthDate: "2023-08-15",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if profile.Name != "Mara" || profile.BirthDate != "2023-08-15" {
		t.Errorf("unexpected profile %+v", profile)
	}
	if babies.record == nil || babies.record.Name != "Mara" {
		t.Errorf("expected persisted record, got %+v", babies.record)
	}
}

func TestUpdateProfile_RequiresName(t *testing.T) {
	service, _ := newTestProfileService()
	ctx := context.Background()

	_, err := service.UpdateProfile(ctx, primary.UpdateProfileRequest{BirthDate: "2023-08-15"})

	if err == nil {
		t.Fatal("expected error for missing name, got nil")
	}
}

func TestUpdateProfile_RejectsBadBirthDate(t *testing.T) {
	service, _ := newTestProfileService()
	ctx := context.Background()

	if _, err := service.UpdateProfile(ctx, primary.UpdateProfileRequest{
		Name:      "Mara",
		BirthDate: "15.08.2023",
	}); err == nil {
		t.Fatal("expected error for malformed birth date, got nil")
	}

	if _, err := service.UpdateProfile(ctx, primary.UpdateProfileRequest{
		Name:      "Mara",
		BirthDate: "2025-01-01",
	}); err == nil {
		t.Fatal("expected error for future birth date, got nil")
	}
}
