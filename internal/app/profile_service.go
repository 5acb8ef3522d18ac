package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/cradle/internal/core/advisor"
	"github.com/example/cradle/internal/core/civil"
	"github.com/example/cradle/internal/ports/primary"
	"github.com/example/cradle/internal/ports/secondary"
)

// defaultProfileName is used until a real name has been stored.
const defaultProfileName = "Baby"

// ProfileServiceImpl implements the ProfileService interface.
type ProfileServiceImpl struct {
	babies secondary.BabyRepository
	parser *civil.Parser
	log    *zap.SugaredLogger
	now    func() time.Time
}

// NewProfileService creates a new ProfileService with injected dependencies.
func NewProfileService(babies secondary.BabyRepository, parser *civil.Parser, log *zap.SugaredLogger, now func() time.Time) *ProfileServiceImpl {
	return &ProfileServiceImpl{babies: babies, parser: parser, log: log, now: now}
}

// GetProfile returns the stored profile, materializing the default one (birth
// date roughly six months back) on first access.
func (s *ProfileServiceImpl) GetProfile(ctx context.Context) (*primary.BabyProfile, error) {
	rec, err := s.babies.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if rec == nil {
		birth := civil.DateString(s.now().AddDate(0, 0, -180))
		if err := s.babies.Upsert(ctx, &secondary.BabyRecord{Name: defaultProfileName, BirthDate: birth}); err != nil {
			return nil, fmt.Errorf("failed to store default profile: %w", err)
		}
		s.log.Infow("created default profile", "birth_date", birth)

		rec, err = s.babies.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
	}

	return s.toProfile(rec)
}

// UpdateProfile validates and stores name and birth date.
func (s *ProfileServiceImpl) UpdateProfile(ctx context.Context, req primary.UpdateProfileRequest) (*primary.BabyProfile, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	birth, err := s.parser.ParseDate(req.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("invalid birth date %q", req.BirthDate)
	}
	if birth.After(s.now()) {
		return nil, fmt.Errorf("birth date %s is in the future", req.BirthDate)
	}

	if err := s.babies.Upsert(ctx, &secondary.BabyRecord{Name: req.Name, BirthDate: civil.DateString(birth)}); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	s.log.Infow("updated profile", "name", req.Name, "birth_date", req.BirthDate)

	rec, err := s.babies.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return s.toProfile(rec)
}

func (s *ProfileServiceImpl) toProfile(rec *secondary.BabyRecord) (*primary.BabyProfile, error) {
	profile := &primary.BabyProfile{
		Name:      rec.Name,
		BirthDate: rec.BirthDate,
	}
	if birth, err := s.parser.ParseDate(rec.BirthDate); err == nil {
		profile.AgeMonths = advisor.AgeInMonths(birth, s.now())
	} else {
		s.log.Warnw("stored birth date is malformed", "birth_date", rec.BirthDate)
	}
	return profile, nil
}

// Ensure ProfileServiceImpl implements the interface.
var _ primary.ProfileService = (*ProfileServiceImpl)(nil)
