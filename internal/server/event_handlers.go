package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/cradle/internal/ports/primary"
)

type feedingBody struct {
	Timestamp string `json:"timestamp"`
	Side      string `json:"side" validate:"required,oneof=left right"`
	EndTime   string `json:"end_time"`
}

type bottleBody struct {
	Timestamp string `json:"timestamp"`
	Amount    int    `json:"amount" validate:"required,gt=0"`
}

type diaperBody struct {
	Timestamp string `json:"timestamp"`
	Type      string `json:"type" validate:"required,oneof=wet solid both"`
}

type temperatureBody struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value" validate:"required,gte=30,lte=45"`
}

type medicineBody struct {
	Timestamp string `json:"timestamp"`
	Name      string `json:"name" validate:"required"`
	Dose      string `json:"dose" validate:"required"`
}

// bindBody parses and validates a JSON request body.
func (s *Server) bindBody(c *gin.Context, body any) bool {
	if err := c.ShouldBindJSON(body); err != nil {
		s.badRequest(c, "invalid JSON body")
		return false
	}
	if err := validate.Struct(body); err != nil {
		s.badRequest(c, err.Error())
		return false
	}
	return true
}

func (s *Server) postFeeding(c *gin.Context) {
	var body feedingBody
	if !s.bindBody(c, &body) {
		return
	}
	event, err := s.tracker.RecordFeeding(c.Request.Context(), primary.FeedingRequest{
		Timestamp: body.Timestamp,
		Side:      body.Side,
		EndTime:   body.EndTime,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (s *Server) putFeeding(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.badRequest(c, "invalid feeding id")
		return
	}
	var body feedingBody
	if !s.bindBody(c, &body) {
		return
	}
	event, err := s.tracker.UpdateFeeding(c.Request.Context(), id, primary.FeedingRequest{
		Timestamp: body.Timestamp,
		Side:      body.Side,
		EndTime:   body.EndTime,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (s *Server) deleteFeeding(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.badRequest(c, "invalid feeding id")
		return
	}
	if err := s.tracker.DeleteFeeding(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (s *Server) postBottle(c *gin.Context) {
	var body bottleBody
	if !s.bindBody(c, &body) {
		return
	}
	event, err := s.tracker.RecordBottle(c.Request.Context(), primary.BottleRequest{
		Timestamp: body.Timestamp,
		Amount:    body.Amount,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (s *Server) putBottle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.badRequest(c, "invalid bottle id")
		return
	}
	var body bottleBody
	if !s.bindBody(c, &body) {
		return
	}
	event, err := s.tracker.UpdateBottle(c.Request.Context(), id, primary.BottleRequest{
		Timestamp: body.Timestamp,
		Amount:    body.Amount,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (s *Server) deleteBottle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.badRequest(c, "invalid bottle id")
		return
	}
	if err := s.tracker.DeleteBottle(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (s *Server) postDiaper(c *gin.Context) {
	var body diaperBody
	if !s.bindBody(c, &body) {
		return
	}
	event, err := s.tracker.RecordDiaper(c.Request.Context(), primary.DiaperRequest{
		Timestamp: body.Timestamp,
		Type:      body.Type,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (s *Server) putDiaper(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.badRequest(c, "invalid diaper id")
		return
	}
	var body diaperBody
	if !s.bindBody(c, &body) {
		return
	}
	event, err := s.tracker.UpdateDiaper(c.Request.Context(), id, primary.DiaperRequest{
		Timestamp: body.Timestamp,
		Type:      body.Type,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (s *Server) deleteDiaper(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.badRequest(c, "invalid diaper id")
		return
	}
	if err := s.tracker.DeleteDiaper(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (s *Server) postTemperature(c *gin.Context) {
	var body temperatureBody
	if !s.bindBody(c, &body) {
		return
	}
	event, err := s.tracker.RecordTemperature(c.Request.Context(), primary.TemperatureRequest{
		Timestamp: body.Timestamp,
		Value:     body.Value,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (s *Server) putTemperature(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.badRequest(c, "invalid temperature id")
		return
	}
	var body temperatureBody
	if !s.bindBody(c, &body) {
		return
	}
	event, err := s.tracker.UpdateTemperature(c.Request.Context(), id, primary.TemperatureRequest{
		Timestamp: body.Timestamp,
		Value:     body.Value,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (s *Server) deleteTemperature(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.badRequest(c, "invalid temperature id")
		return
	}
	if err := s.tracker.DeleteTemperature(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (s *Server) postMedicine(c *gin.Context) {
	var body medicineBody
	if !s.bindBody(c, &body) {
		return
	}
	event, err := s.tracker.RecordMedicine(c.Request.Context(), primary.MedicineRequest{
		Timestamp: body.Timestamp,
		Name:      body.Name,
		Dose:      body.Dose,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (s *Server) putMedicine(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.badRequest(c, "invalid medicine id")
		return
	}
	var body medicineBody
	if !s.bindBody(c, &body) {
		return
	}
	event, err := s.tracker.UpdateMedicine(c.Request.Context(), id, primary.MedicineRequest{
		Timestamp: body.Timestamp,
		Name:      body.Name,
		Dose:      body.Dose,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (s *Server) deleteMedicine(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.badRequest(c, "invalid medicine id")
		return
	}
	if err := s.tracker.DeleteMedicine(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
