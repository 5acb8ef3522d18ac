package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/cradle/internal/ports/primary"
)

type settingsBody struct {
	Name      string `json:"name" validate:"required"`
	BirthDate string `json:"birth_date" validate:"required"`
}

func (s *Server) getSettings(c *gin.Context) {
	profile, err := s.profile.GetProfile(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) putSettings(c *gin.Context) {
	var body settingsBody
	if !s.bindBody(c, &body) {
		return
	}

	profile, err := s.profile.UpdateProfile(c.Request.Context(), primary.UpdateProfileRequest{
		Name:      body.Name,
		BirthDate: body.BirthDate,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
