package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voyago/tripdeck/pkg/db"
	"github.com/voyago/tripdeck/pkg/models"
)

// TripRequest represents the create/update payload for a trip
type TripRequest struct {
	Name        string  `json:"name" binding:"required"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description string  `json:"description"`
}

func (s *Server) validateTripRequest(c *gin.Context, req *TripRequest) bool {
	req.Name = s.validator.SanitizeInput(req.Name)
	if req.Name == "" {
		detail(c, http.StatusUnprocessableEntity, "Trip name is required")
		return false
	}
	for _, d := range []*string{req.StartDate, req.EndDate} {
		if d != nil && *d != "" && !s.validator.ValidateDate(*d) {
			detail(c, http.StatusUnprocessableEntity, "Dates must use YYYY-MM-DD format")
			return false
		}
	}
	return true
}

func (s *Server) getTrips(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		detail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	repo := db.NewRepository(s.db)
	trips, err := repo.GetTripsByUserID(user.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list trips")
		detail(c, http.StatusInternalServerError, "Failed to list trips")
		return
	}

	c.JSON(http.StatusOK, trips)
}

func (s *Server) createTrip(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		detail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "Invalid request data")
		return
	}
	if !s.validateTripRequest(c, &req) {
		return
	}

	trip := &models.Trip{
		UserID:      user.ID,
		Name:        req.Name,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	}

	repo := db.NewRepository(s.db)
	if err := repo.CreateTrip(trip); err != nil {
		s.logger.WithError(err).Error("Failed to create trip")
		detail(c, http.StatusInternalServerError, "Failed to create trip")
		return
	}

	c.JSON(http.StatusCreated, trip)
}

func (s *Server) updateTrip(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		detail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "Invalid request data")
		return
	}
	if !s.validateTripRequest(c, &req) {
		return
	}

	repo := db.NewRepository(s.db)
	trip, err := repo.GetTripByID(user.ID, id)
	if err != nil {
		s.notFoundOrError(c, err, "Trip")
		return
	}

	trip.Name = req.Name
	trip.StartDate = req.StartDate
	trip.EndDate = req.EndDate
	trip.Description = req.Description

	if err := repo.UpdateTrip(trip); err != nil {
		s.logger.WithError(err).Error("Failed to update trip")
		detail(c, http.StatusInternalServerError, "Failed to update trip")
		return
	}

	c.JSON(http.StatusOK, trip)
}

func (s *Server) deleteTrip(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		detail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	repo := db.NewRepository(s.db)
	if _, err := repo.GetTripByID(user.ID, id); err != nil {
		s.notFoundOrError(c, err, "Trip")
		return
	}

	if err := repo.DeleteTrip(user.ID, id); err != nil {
		s.logger.WithError(err).Error("Failed to delete trip")
		detail(c, http.StatusInternalServerError, "Failed to delete trip")
		return
	}

	c.Status(http.StatusNoContent)
}
