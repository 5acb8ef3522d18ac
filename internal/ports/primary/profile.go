package primary

import "context"

// ProfileService defines the primary port for the singleton baby profile.
type ProfileService interface {
	// GetProfile returns the profile, creating the lazy default (birth date
	// roughly six months ago) when none has been stored yet.
	GetProfile(ctx context.Context) (*BabyProfile, error)

	// UpdateProfile stores name and birth date.
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*BabyProfile, error)
}

// UpdateProfileRequest contains parameters for updating the profile.
type UpdateProfileRequest struct {
	Name      string
	BirthDate string // civil date, "2006-01-02"
}

// BabyProfile represents the profile at the port boundary.
type BabyProfile struct {
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	AgeMonths int    `json:"age_months"`
}
