package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/interface8/Prompt-8/internal/services"
  "github.com/interface8/Prompt-8/internal/types"
)

type AuthHandler struct {
  authService   services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req struct {
    Email        string   `json:"email"`
    Name         string   `json:"name"`
    Password     string   `json:"password"`
    Profession   string   `json:"profession,omitempty"`
    Image        string   `json:"image,omitempty"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  user := types.User{
    Email:      req.Email,
    Name:       req.Name,
    Password:   req.Password,
    Bio:        req.Profession,
    Image:      req.Image,
  }
  if err := ah.authService.RegisterUser(c.Request.Context(), &user); err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req struct {
    Email      string   `json:"email"`
    Password   string   `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  accessToken, refreshToken, err := ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
  if err != nil {
    RespondError(c, err)
    return
  }
  expiresIn := int(ah.authService.GetAccessTTL().Seconds())
  c.JSON(http.StatusOK, gin.H{"access_token": accessToken, "refresh_token": refreshToken, "expires_in": expiresIn})
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
  accessToken, refreshToken, err := ah.authService.RefreshUser(c.Request.Context())
  if err != nil {
    RespondError(c, err)
    return
  }
  expiresIn := int(ah.authService.GetAccessTTL().Seconds())
  c.JSON(http.StatusOK, gin.H{"access_token": accessToken, "refresh_token": refreshToken, "expires_in": expiresIn})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
  if err := ah.authService.LogoutUser(c.Request.Context()); err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}
