package handler

import (
	"errors"
	"log"

	"keeper/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy to transport statuses.
// Unexpected store failures surface as a generic 500 with no detail.
func respondError(c *gin.Context, err error) {
	switch {
	case utils.IsValidationError(err):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, utils.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, utils.ErrConflict):
		utils.Conflict(c, err.Error())
	case errors.Is(err, utils.ErrUpstreamUnavailable):
		log.Printf("Store unavailable on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.ServiceUnavailable(c, "Service temporarily unavailable")
	default:
		log.Printf("Internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.TrackError("internal")
		utils.InternalError(c, "Something went wrong")
	}
}
