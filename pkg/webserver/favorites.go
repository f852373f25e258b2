package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voyago/tripdeck/pkg/db"
	"github.com/voyago/tripdeck/pkg/models"
)

// FavoriteRequest represents the payload marking a destination as
// favorite
type FavoriteRequest struct {
	DestinationID uint `json:"destination_id" binding:"required"`
}

func (s *Server) getFavorites(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		detail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	repo := db.NewRepository(s.db)
	favorites, err := repo.GetFavoritesByUserID(user.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list favorites")
		detail(c, http.StatusInternalServerError, "Failed to list favorites")
		return
	}

	c.JSON(http.StatusOK, favorites)
}

func (s *Server) createFavorite(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		detail(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "Invalid request data")
		return
	}

	repo := db.NewRepository(s.db)
	if _, err := repo.GetDestinationByID(user.ID, req.DestinationID); err != nil {
		s.notFoundOrError(c, err, "Destination")
		return
	}

	favorite := &models.Favorite{
		UserID:        user.ID,
		DestinationID: req.DestinationID,
	}

	if err := repo.CreateFavorite(favorite); err != nil {
		s.logger.WithError(err).Error("Failed to create favorite")
		detail(c, http.StatusInternalServerError, "Failed to create favorite")
		return
	}

	c.JSON(http.StatusCreated, favorite)
}

func (s *Server) deleteFavorite(c *gin.Context) {
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
	if err := repo.DeleteFavorite(user.ID, id); err != nil {
		s.logger.WithError(err).Error("Failed to delete favorite")
		detail(c, http.StatusInternalServerError, "Failed to delete favorite")
		return
	}

	c.Status(http.StatusNoContent)
}
