package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ambusos/ambusos-api/internal/domain"
)

// respondError maps the domain error taxonomy onto HTTP statuses. Unknown
// errors are logged with the request id and surfaced as a bare 500.
func (s *Server) respondError(c *gin.Context, err error) {
	var (
		invalidEnum *domain.InvalidEnumValueError
		validation  *domain.ValidationError
		notFound    *domain.NotFoundError
		duplicate   *domain.DuplicateAssignmentError
		unique      *domain.UniqueConstraintError
		conflict    *domain.ConflictError
	)

	switch {
	case errors.As(err, &invalidEnum):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   invalidEnum.Error(),
			"campo":   invalidEnum.Field,
			"valores": invalidEnum.Allowed,
		})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validation.Error(),
			"campo": validation.Field,
		})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &duplicate):
		c.JSON(http.StatusConflict, gin.H{"error": duplicate.Error()})
	case errors.As(err, &unique):
		c.JSON(http.StatusConflict, gin.H{
			"error": unique.Error(),
			"campo": unique.Field,
		})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
	case errors.Is(err, domain.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
	default:
		s.log.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.Request.URL.Path,
		}).WithError(err).Error("Unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
