package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voyago/tripdeck/pkg/db"
	"github.com/voyago/tripdeck/pkg/models"
)

// DestinationRequest represents the create/update payload for a destination
type DestinationRequest struct {
	TripID  uint     `json:"trip_id" binding:"required"`
	Name    string   `json:"name" binding:"required"`
	Country string   `json:"country"`
	Notes   string   `json:"notes"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

// tripOwned checks that the referenced trip belongs to the caller
func (s *Server) tripOwned(c *gin.Context, repo *db.Repository, userID, tripID uint) bool {
	if _, err := repo.GetTripByID(userID, tripID); err != nil {
		s.notFoundOrError(c, err, "Trip")
		return false
	}
	return true
}

func (s *Server) getDestinations(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		detail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tripID, ok := tripIDQuery(c)
	if !ok {
		return
	}

	repo := db.NewRepository(s.db)
	destinations, err := repo.GetDestinationsByUserID(user.ID, tripID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list destinations")
		detail(c, http.StatusInternalServerError, "Failed to list destinations")
		return
	}

	c.JSON(http.StatusOK, destinations)
}

func (s *Server) createDestination(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		detail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req DestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "Invalid request data")
		return
	}

	repo := db.NewRepository(s.db)
	if !s.tripOwned(c, repo, user.ID, req.TripID) {
		return
	}

	destination := &models.Destination{
		UserID:  user.ID,
		TripID:  req.TripID,
		Name:    s.validator.SanitizeInput(req.Name),
		Country: req.Country,
		Notes:   req.Notes,
		Lat:     req.Lat,
		Lng:     req.Lng,
	}

	if err := repo.CreateDestination(destination); err != nil {
		s.logger.WithError(err).Error("Failed to create destination")
		detail(c, http.StatusInternalServerError, "Failed to create destination")
		return
	}

	c.JSON(http.StatusCreated, destination)
}

func (s *Server) updateDestination(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		detail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req DestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "Invalid request data")
		return
	}

	repo := db.NewRepository(s.db)
	destination, err := repo.GetDestinationByID(user.ID, id)
	if err != nil {
		s.notFoundOrError(c, err, "Destination")
		return
	}
	if !s.tripOwned(c, repo, user.ID, req.TripID) {
		return
	}

	destination.TripID = req.TripID
	destination.Name = s.validator.SanitizeInput(req.Name)
	destination.Country = req.Country
	destination.Notes = req.Notes
	destination.Lat = req.Lat
	destination.Lng = req.Lng

	if err := repo.UpdateDestination(destination); err != nil {
		s.logger.WithError(err).Error("Failed to update destination")
		detail(c, http.StatusInternalServerError, "Failed to update destination")
		return
	}

	c.JSON(http.StatusOK, destination)
}

func (s *Server) deleteDestination(c *gin.Context) {
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
	if _, err := repo.GetDestinationByID(user.ID, id); err != nil {
		s.notFoundOrError(c, err, "Destination")
		return
	}

	if err := repo.DeleteDestination(user.ID, id); err != nil {
		s.logger.WithError(err).Error("Failed to delete destination")
		detail(c, http.StatusInternalServerError, "Failed to delete destination")
		return
	}

	c.Status(http.StatusNoContent)
}
