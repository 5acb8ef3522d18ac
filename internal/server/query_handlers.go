package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/cradle/internal/core/civil"
)

func (s *Server) getDay(c *gin.Context) {
	summary, err := s.tracker.DaySummary(c.Request.Context(), c.Query("date"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getEntries serves the merged feed. view=day (default) returns one day newest
// first; view=week returns the seven days ending on the date, ascending.
func (s *Server) getEntries(c *gin.Context) {
	date := c.Query("date")
	view := c.DefaultQuery("view", "day")

	switch view {
	case "day":
		list, err := s.entries.EntriesForDay(c.Request.Context(), date)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"view": "day", "entries": list})

	case "week":
		day := civil.DayOf(s.now())
		if date != "" {
			parsed, err := s.parser.ParseDate(date)
			if err != nil {
				s.badRequest(c, err.Error())
				return
			}
			day = parsed
		}
		start := day.AddDate(0, 0, -6)

		list, err := s.entries.EntriesForRange(c.Request.Context(),
			civil.DateString(start), civil.DateString(day))
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"view": "week", "entries": list})

	default:
		s.badRequest(c, "view must be 'day' or 'week'")
	}
}

func (s *Server) getDailySleep(c *gin.Context) {
	date := c.Query("date")
	hours, err := s.stats.DailySleepHours(c.Request.Context(), date)
	if err != nil {
		s.fail(c, err)
		return
	}
	if date == "" {
		date = civil.DateString(s.now())
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "hours": hours})
}

// statsRange reads the required start/end query parameters.
func (s *Server) statsRange(c *gin.Context) (string, string, bool) {
	start, end := c.Query("start"), c.Query("end")
	if start == "" || end == "" {
		s.badRequest(c, "start and end query parameters are required")
		return "", "", false
	}
	return start, end, true
}

func (s *Server) getSleepStats(c *gin.Context) {
	start, end, ok := s.statsRange(c)
	if !ok {
		return
	}
	stats, err := s.stats.SleepStatistics(c.Request.Context(), start, end)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) getDiaperStats(c *gin.Context) {
	start, end, ok := s.statsRange(c)
	if !ok {
		return
	}
	stats, err := s.stats.DiaperStatistics(c.Request.Context(), start, end)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) getFeedingStats(c *gin.Context) {
	start, end, ok := s.statsRange(c)
	if !ok {
		return
	}
	stats, err := s.stats.FeedingStatistics(c.Request.Context(), start, end)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) getTemperatureStats(c *gin.Context) {
	start, end, ok := s.statsRange(c)
	if !ok {
		return
	}
	stats, err := s.stats.TemperatureStatistics(c.Request.Context(), start, end)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) getNapAdvice(c *gin.Context) {
	result, err := s.advisor.NextNap(c.Request.Context(), c.Query("date"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getBedtimeAdvice(c *gin.Context) {
	result, err := s.advisor.NextBedtime(c.Request.Context(), c.Query("date"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
