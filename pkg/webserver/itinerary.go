package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voyago/tripdeck/pkg/db"
	"github.com/voyago/tripdeck/pkg/models"
)

// ItineraryItemRequest represents the create/update payload for an
// itinerary item
type ItineraryItemRequest struct {
	TripID        uint    `json:"trip_id" binding:"required"`
	Date          string  `json:"date" binding:"required"`
	Title         string  `json:"title" binding:"required"`
	Location      string  `json:"location"`
	Notes         string  `json:"notes"`
	DestinationID *uint   `json:"destination_id"`
	StartTime     *string `json:"start_time"`
	EndTime       *string `json:"end_time"`
}

func (s *Server) validateItineraryRequest(c *gin.Context, req *ItineraryItemRequest) bool {
	if !s.validator.ValidateDate(req.Date) {
		detail(c, http.StatusUnprocessableEntity, "Date must use YYYY-MM-DD format")
		return false
	}
	for _, t := range []*string{req.StartTime, req.EndTime} {
		if t != nil && *t != "" && !s.validator.ValidateTime(*t) {
			detail(c, http.StatusUnprocessableEntity, "Times must use HH:MM format")
			return false
		}
	}
	return true
}

func (s *Server) getItineraryItems(c *gin.Context) {
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
	items, err := repo.GetItineraryItemsByUserID(user.ID, tripID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list itinerary items")
		detail(c, http.StatusInternalServerError, "Failed to list itinerary items")
		return
	}

	c.JSON(http.StatusOK, items)
}

func (s *Server) createItineraryItem(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		detail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ItineraryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "Invalid request data")
		return
	}
	if !s.validateItineraryRequest(c, &req) {
		return
	}

	repo := db.NewRepository(s.db)
	if !s.tripOwned(c, repo, user.ID, req.TripID) {
		return
	}

	item := &models.ItineraryItem{
		UserID:        user.ID,
		TripID:        req.TripID,
		Date:          req.Date,
		Title:         s.validator.SanitizeInput(req.Title),
		Location:      req.Location,
		Notes:         req.Notes,
		DestinationID: req.DestinationID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
	}

	if err := repo.CreateItineraryItem(item); err != nil {
		s.logger.WithError(err).Error("Failed to create itinerary item")
		detail(c, http.StatusInternalServerError, "Failed to create itinerary item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (s *Server) updateItineraryItem(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		detail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ItineraryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "Invalid request data")
		return
	}
	if !s.validateItineraryRequest(c, &req) {
		return
	}

	repo := db.NewRepository(s.db)
	item, err := repo.GetItineraryItemByID(user.ID, id)
	if err != nil {
		s.notFoundOrError(c, err, "Itinerary item")
		return
	}
	if !s.tripOwned(c, repo, user.ID, req.TripID) {
		return
	}

	item.TripID = req.TripID
	item.Date = req.Date
	item.Title = s.validator.SanitizeInput(req.Title)
	item.Location = req.Location
	item.Notes = req.Notes
	item.DestinationID = req.DestinationID
	item.StartTime = req.StartTime
	item.EndTime = req.EndTime

	if err := repo.UpdateItineraryItem(item); err != nil {
		s.logger.WithError(err).Error("Failed to update itinerary item")
		detail(c, http.StatusInternalServerError, "Failed to update itinerary item")
		return
	}

	c.JSON(http.StatusOK, item)
}

func (s *Server) deleteItineraryItem(c *gin.Context) {
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
	if _, err := repo.GetItineraryItemByID(user.ID, id); err != nil {
		s.notFoundOrError(c, err, "Itinerary item")
		return
	}

	if err := repo.DeleteItineraryItem(user.ID, id); err != nil {
		s.logger.WithError(err).Error("Failed to delete itinerary item")
		detail(c, http.StatusInternalServerError, "Failed to delete itinerary item")
		return
	}

	c.Status(http.StatusNoContent)
}
