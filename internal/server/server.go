// Package server exposes the tracker as a JSON HTTP API.
package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/example/cradle/internal/core/civil"
	"github.com/example/cradle/internal/ports/primary"
)

var validate = validator.New()

// Server holds the primary-port services behind the HTTP handlers.
type Server struct {
	tracker primary.TrackerService
	stats   primary.StatsService
	advisor primary.AdvisorService
	entries primary.EntryService
	profile primary.ProfileService
	parser  *civil.Parser
	log     *zap.SugaredLogger
	now     func() time.Time
}

// New creates a Server with injected services.
func New(
	tracker primary.TrackerService,
	stats primary.StatsService,
	advisor primary.AdvisorService,
	entries primary.EntryService,
	profile primary.ProfileService,
	parser *civil.Parser,
	log *zap.SugaredLogger,
	now func() time.Time,
) *Server {
	return &Server{
		tracker: tracker,
		stats:   stats,
		advisor: advisor,
		entries: entries,
		profile: profile,
		parser:  parser,
		log:     log,
		now:     now,
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/sleep/nap/start", s.startSleep(primary.SleepKindNap))
	r.POST("/sleep/nap/end", s.endSleep(primary.SleepKindNap))
	r.POST("/sleep/night/start", s.startSleep(primary.SleepKindNight))
	r.POST("/sleep/night/end", s.endSleep(primary.SleepKindNight))
	r.GET("/sleep/active", s.activeSleep)
	r.PUT("/sleep/:id", s.updateSleep)
	r.DELETE("/sleep/:id", s.deleteSleep)

	r.POST("/sleep/waking/start", s.startWaking)
	r.POST("/sleep/waking/end", s.endWaking)
	r.DELETE("/sleep/waking/:id", s.deleteWaking)

	r.POST("/feeding", s.postFeeding)
	r.PUT("/feeding/:id", s.putFeeding)
	r.DELETE("/feeding/:id", s.deleteFeeding)
	r.POST("/bottle", s.postBottle)
	r.PUT("/bottle/:id", s.putBottle)
	r.DELETE("/bottle/:id", s.deleteBottle)
	r.POST("/diaper", s.postDiaper)
	r.PUT("/diaper/:id", s.putDiaper)
	r.DELETE("/diaper/:id", s.deleteDiaper)
	r.POST("/temperature", s.postTemperature)
	r.PUT("/temperature/:id", s.putTemperature)
	r.DELETE("/temperature/:id", s.deleteTemperature)
	r.POST("/medicine", s.postMedicine)
	r.PUT("/medicine/:id", s.putMedicine)
	r.DELETE("/medicine/:id", s.deleteMedicine)

	r.GET("/day", s.getDay)
	r.GET("/entries", s.getEntries)

	r.GET("/stats/day", s.getDailySleep)
	r.GET("/stats/sleep", s.getSleepStats)
	r.GET("/stats/diaper", s.getDiaperStats)
	r.GET("/stats/feeding", s.getFeedingStats)
	r.GET("/stats/temperature", s.getTemperatureStats)

	r.GET("/advisor/nap", s.getNapAdvice)
	r.GET("/advisor/bedtime", s.getBedtimeAdvice)

	r.GET("/settings", s.getSettings)
	r.PUT("/settings", s.putSettings)

	return r
}

// Run starts the HTTP server on the given address and blocks.
func (s *Server) Run(addr string) error {
	s.log.Infow("http server listening", "addr", addr)
	return s.Router().Run(addr)
}
