// Package wire provides dependency injection for the cradle application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/example/cradle/internal/adapters/sqlite"
	"github.com/example/cradle/internal/app"
	"github.com/example/cradle/internal/config"
	"github.com/example/cradle/internal/core/civil"
	"github.com/example/cradle/internal/db"
	"github.com/example/cradle/internal/logging"
	"github.com/example/cradle/internal/ports/primary"
)

var (
	cfg            *config.Config
	loc            *time.Location
	parser         *civil.Parser
	logger         *zap.SugaredLogger
	trackerService primary.TrackerService
	statsService   primary.StatsService
	advisorService primary.AdvisorService
	entryService   primary.EntryService
	profileService primary.ProfileService
	once           sync.Once
)

// Config returns the loaded application configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Location returns the configured civil timezone.
func Location() *time.Location {
	once.Do(initServices)
	return loc
}

// Parser returns the civil-time parser bound to the configured timezone.
func Parser() *civil.Parser {
	once.Do(initServices)
	return parser
}

// Logger returns the shared application logger.
func Logger() *zap.SugaredLogger {
	once.Do(initServices)
	return logger
}

// TrackerService returns the singleton TrackerService instance.
func TrackerService() primary.TrackerService {
	once.Do(initServices)
	return trackerService
}

// StatsService returns the singleton StatsService instance.
func StatsService() primary.StatsService {
	once.Do(initServices)
	return statsService
}

// AdvisorService returns the singleton AdvisorService instance.
func AdvisorService() primary.AdvisorService {
	once.Do(initServices)
	return advisorService
}

// EntryService returns the singleton EntryService instance.
func EntryService() primary.EntryService {
	once.Do(initServices)
	return entryService
}

// ProfileService returns the singleton ProfileService instance.
func ProfileService() primary.ProfileService {
	once.Do(initServices)
	return profileService
}

// Now returns the current time in the configured timezone.
func Now() time.Time {
	once.Do(initServices)
	return time.Now().In(loc)
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	dir, err := config.DataDir()
	if err != nil {
		log.Fatalf("failed to resolve data directory: %v", err)
	}

	cfg, err = config.LoadConfig(dir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err = logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	loc, err = cfg.Location()
	if err != nil {
		log.Fatalf("failed to load timezone: %v", err)
	}
	parser = &civil.Parser{Loc: loc}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	now := func() time.Time { return time.Now().In(loc) }

	// Repository adapters (secondary ports) over the shared connection.
	sleeps := sqlite.NewSleepRepository(database)
	wakings := sqlite.NewWakingRepository(database)
	feedings := sqlite.NewFeedingRepository(database)
	bottles := sqlite.NewBottleRepository(database)
	diapers := sqlite.NewDiaperRepository(database)
	temps := sqlite.NewTemperatureRepository(database)
	meds := sqlite.NewMedicineRepository(database)
	babies := sqlite.NewBabyRepository(database)
	suggestions := sqlite.NewSuggestionRepository(database)

	// Services (primary ports implementation).
	trackerService = app.NewTrackerService(sleeps, wakings, feedings, bottles, diapers, temps, meds, suggestions, parser, logger, now)
	statsService = app.NewStatsService(sleeps, wakings, feedings, bottles, diapers, temps, parser, logger, now)
	advisorService = app.NewAdvisorService(sleeps, wakings, babies, suggestions, parser, logger, now)
	entryService = app.NewEntryService(sleeps, feedings, bottles, diapers, temps, meds, parser, logger, now)
	profileService = app.NewProfileService(babies, parser, logger, now)
}
