package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/cradle/internal/ports/primary"
)

type startSleepBody struct {
	StartTime string `json:"start_time"`
}

type endSleepBody struct {
	EndTime string `json:"end_time"`
}

type updateSleepBody struct {
	Type      string `json:"type" validate:"required,oneof=nap night"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time"`
}

func (s *Server) startSleep(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body startSleepBody
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&body); err != nil {
				s.badRequest(c, "invalid JSON body")
				return
			}
		}

		event, err := s.tracker.StartSleep(c.Request.Context(), primary.StartSleepRequest{
			Kind:      kind,
			StartTime: body.StartTime,
		})
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, event)
	}
}

func (s *Server) endSleep(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body endSleepBody
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&body); err != nil {
				s.badRequest(c, "invalid JSON body")
				return
			}
		}

		event, err := s.tracker.EndSleep(c.Request.Context(), primary.EndSleepRequest{
			Kind:    kind,
			EndTime: body.EndTime,
		})
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

func (s *Server) activeSleep(c *gin.Context) {
	event, err := s.tracker.ActiveSleep(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	if event == nil {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": true, "sleep": event})
}

func (s *Server) updateSleep(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.badRequest(c, "invalid sleep id")
		return
	}

	var body updateSleepBody
	if err := c.ShouldBindJSON(&body); err != nil {
		s.badRequest(c, "invalid JSON body")
		return
	}
	if err := validate.Struct(body); err != nil {
		s.badRequest(c, err.Error())
		return
	}

	event, err := s.tracker.UpdateSleep(c.Request.Context(), primary.UpdateSleepRequest{
		ID:        id,
		Kind:      body.Type,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (s *Server) deleteSleep(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.badRequest(c, "invalid sleep id")
		return
	}
	if err := s.tracker.DeleteSleep(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (s *Server) startWaking(c *gin.Context) {
	var body startSleepBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			s.badRequest(c, "invalid JSON body")
			return
		}
	}

	event, err := s.tracker.StartWaking(c.Request.Context(), primary.StartWakingRequest{
		StartTime: body.StartTime,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (s *Server) endWaking(c *gin.Context) {
	var body endSleepBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			s.badRequest(c, "invalid JSON body")
			return
		}
	}

	event, err := s.tracker.EndWaking(c.Request.Context(), primary.EndWakingRequest{
		EndTime: body.EndTime,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (s *Server) deleteWaking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.badRequest(c, "invalid waking id")
		return
	}
	if err := s.tracker.DeleteWaking(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
