package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/interface8/Prompt-8/internal/services"
)

type CartHandler struct {
  cartService   services.CartService
}

func NewCartHandler(cartService services.CartService) *CartHandler {
  return &CartHandler{cartService: cartService}
}

func (ch *CartHandler) Get(c *gin.Context) {
  cart, err := ch.cartService.GetCart(c.Request.Context())
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, cart)
}

func (ch *CartHandler) Add(c *gin.Context) {
  var req struct {
    PromptID   string   `json:"promptId"`
  }
  if err := c.ShouldBindJSON(&req); err != nil || req.PromptID == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt ID is required"})
    return
  }
  promptID, pErr := uuid.Parse(req.PromptID)
  if pErr != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt ID is required"})
    return
  }
  item, err := ch.cartService.AddToCart(c.Request.Context(), promptID)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusCreated, item)
}

func (ch *CartHandler) Remove(c *gin.Context) {
  raw := c.Query("promptId")
  if raw == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt ID is required"})
    return
  }
  promptID, pErr := uuid.Parse(raw)
  if pErr != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt ID is required"})
    return
  }
  if err := ch.cartService.RemoveFromCart(c.Request.Context(), promptID); err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true})
}
