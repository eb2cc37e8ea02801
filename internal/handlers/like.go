package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/interface8/Prompt-8/internal/services"
)

type LikeHandler struct {
  likeService   services.LikeService
}

func NewLikeHandler(likeService services.LikeService) *LikeHandler {
  return &LikeHandler{likeService: likeService}
}

func (lh *LikeHandler) Toggle(c *gin.Context) {
  promptID, pErr := uuid.Parse(c.Param("promptId"))
  if pErr != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt ID is required"})
    return
  }
  liked, err := lh.likeService.Toggle(c.Request.Context(), promptID)
  if err != nil {
    RespondError(c, err)
    return
  }
  message := "Prompt unliked"
  if liked {
    message = "Prompt liked"
  }
  c.JSON(http.StatusOK, gin.H{"liked": liked, "message": message})
}

func (lh *LikeHandler) Status(c *gin.Context) {
  promptID, pErr := uuid.Parse(c.Param("promptId"))
  if pErr != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt ID is required"})
    return
  }
  liked, err := lh.likeService.IsLiked(c.Request.Context(), promptID)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"liked": liked})
}
