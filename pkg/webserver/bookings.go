package webserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/voyago/tripdeck/pkg/db"
	"github.com/voyago/tripdeck/pkg/models"
)

// BookingRequest represents the create/update payload for a booking
type BookingRequest struct {
	TripID    uint    `json:"trip_id" binding:"required"`
	Type      string  `json:"type"`
	Provider  string  `json:"provider"`
	Reference string  `json:"reference"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Notes     string  `json:"notes"`
}

func (s *Server) validateBookingRequest(c *gin.Context, req *BookingRequest) bool {
	if req.Type == "" {
		req.Type = "Other"
	}
	if !s.validator.ValidateBookingType(req.Type) {
		detail(c, http.StatusUnprocessableEntity, "Invalid booking type")
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

func (s *Server) getBookings(c *gin.Context) {
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
	bookings, err := repo.GetBookingsByUserID(user.ID, tripID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list bookings")
		detail(c, http.StatusInternalServerError, "Failed to list bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (s *Server) createBooking(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		detail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "Invalid request data")
		return
	}
	if !s.validateBookingRequest(c, &req) {
		return
	}

	repo := db.NewRepository(s.db)
	if !s.tripOwned(c, repo, user.ID, req.TripID) {
		return
	}

	// assign a reference when the client supplies none
	if req.Reference == "" {
		req.Reference = strings.ToUpper(uuid.NewString()[:8])
	}

	booking := &models.Booking{
		UserID:    user.ID,
		TripID:    req.TripID,
		Type:      req.Type,
		Provider:  s.validator.SanitizeInput(req.Provider),
		Reference: req.Reference,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Notes:     req.Notes,
	}

	if err := repo.CreateBooking(booking); err != nil {
		s.logger.WithError(err).Error("Failed to create booking")
		detail(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (s *Server) updateBooking(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		detail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "Invalid request data")
		return
	}
	if !s.validateBookingRequest(c, &req) {
		return
	}

	repo := db.NewRepository(s.db)
	booking, err := repo.GetBookingByID(user.ID, id)
	if err != nil {
		s.notFoundOrError(c, err, "Booking")
		return
	}
	if !s.tripOwned(c, repo, user.ID, req.TripID) {
		return
	}

	booking.TripID = req.TripID
	booking.Type = req.Type
	booking.Provider = s.validator.SanitizeInput(req.Provider)
	booking.Reference = req.Reference
	booking.StartDate = req.StartDate
	booking.EndDate = req.EndDate
	booking.Notes = req.Notes

	if err := repo.UpdateBooking(booking); err != nil {
		s.logger.WithError(err).Error("Failed to update booking")
		detail(c, http.StatusInternalServerError, "Failed to update booking")
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (s *Server) deleteBooking(c *gin.Context) {
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
	if _, err := repo.GetBookingByID(user.ID, id); err != nil {
		s.notFoundOrError(c, err, "Booking")
		return
	}

	if err := repo.DeleteBooking(user.ID, id); err != nil {
		s.logger.WithError(err).Error("Failed to delete booking")
		detail(c, http.StatusInternalServerError, "Failed to delete booking")
		return
	}

	c.Status(http.StatusNoContent)
}
