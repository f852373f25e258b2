package webserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errNoUser = errors.New("no user in context")

// pathID parses the :id path parameter. A non-numeric id gets a 422
// with a FastAPI-style detail body.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		detail(c, http.StatusUnprocessableEntity, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// tripIDQuery parses the optional trip_id query filter. Zero means no
// filter.
func tripIDQuery(c *gin.Context) (uint, bool) {
	raw := c.Query("trip_id")
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		detail(c, http.StatusUnprocessableEntity, "Invalid trip_id")
		return 0, false
	}
	return uint(id), true
}

// notFoundOrError maps gorm lookup failures to the right status
func (s *Server) notFoundOrError(c *gin.Context, err error, resource string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		detail(c, http.StatusNotFound, resource+" not found")
		return
	}
	s.logger.WithError(err).Error("Database lookup failed")
	detail(c, http.StatusInternalServerError, "Internal server error")
}
