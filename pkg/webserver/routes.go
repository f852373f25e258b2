package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// Health check endpoint (no auth required)
	s.router.GET("/health", s.healthCheck)

	// Public routes (no authentication required)
	auth := s.router.Group("/auth")
	{
		auth.POST("/register", s.handleRegister)
		auth.POST("/login", s.handleLogin)
	}

	// Protected routes (JWT authentication required)
	protected := s.router.Group("")
	protected.Use(s.authMiddleware())
	{
		protected.GET("/auth/me", s.handleMe)

		trips := protected.Group("/trips")
		{
			trips.GET("", s.getTrips)
			trips.POST("", s.createTrip)
			trips.PUT("/:id", s.updateTrip)
			trips.DELETE("/:id", s.deleteTrip)
		}

		destinations := protected.Group("/destinations")
		{
			destinations.GET("", s.getDestinations)
			destinations.POST("", s.createDestination)
			destinations.PUT("/:id", s.updateDestination)
			destinations.DELETE("/:id", s.deleteDestination)
		}

		itinerary := protected.Group("/itinerary")
		{
			itinerary.GET("", s.getItineraryItems)
			itinerary.POST("", s.createItineraryItem)
			itinerary.PUT("/:id", s.updateItineraryItem)
			itinerary.DELETE("/:id", s.deleteItineraryItem)
		}

		bookings := protected.Group("/bookings")
		{
			bookings.GET("", s.getBookings)
			bookings.POST("", s.createBooking)
			bookings.PUT("/:id", s.updateBooking)
			bookings.DELETE("/:id", s.deleteBooking)
		}

		favorites := protected.Group("/favorites")
		{
			favorites.GET("", s.getFavorites)
			favorites.POST("", s.createFavorite)
			favorites.DELETE("/:id", s.deleteFavorite)
		}
	}

	s.router.NoRoute(func(c *gin.Context) {
		detail(c, http.StatusNotFound, "Route not found")
	})
}
