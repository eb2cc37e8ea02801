package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/interface8/Prompt-8/internal/apierr"
)

// RespondError maps service errors onto the {"error": msg} envelope, using
// the status carried by apierr when present and 500 otherwise.
func RespondError(c *gin.Context, err error) {
  var ae *apierr.Error
  if errors.As(err, &ae) {
    c.JSON(ae.Status, gin.H{"error": ae.Error()})
    return
  }
  c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
