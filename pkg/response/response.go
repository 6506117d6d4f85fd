package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/civicpulse/issues-api/pkg/errors"
)

// OK sends a success body carrying the payload fields alongside the
// success flag every response includes.
func OK(c *gin.Context, payload gin.H) {
	JSON(c, http.StatusOK, payload)
}

// JSON sends a success body at the given status.
func JSON(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error sends a failure body with the error message surfaced and the
// status taken from the error taxonomy.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, gin.H{"success": false, "error": appErr.Message})
}
