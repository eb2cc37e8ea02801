package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/interface8/Prompt-8/internal/services"
)

type UserHandler struct {
  userService   services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
  user, err := uh.userService.GetMe(c.Request.Context())
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, user)
}
