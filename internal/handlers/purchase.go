package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/interface8/Prompt-8/internal/services"
)

type PurchaseHandler struct {
  purchaseService   services.PurchaseService
}

func NewPurchaseHandler(purchaseService services.PurchaseService) *PurchaseHandler {
  return &PurchaseHandler{purchaseService: purchaseService}
}

func (ph *PurchaseHandler) Checkout(c *gin.Context) {
  var req struct {
    PromptIDs       []string   `json:"promptIds"`
    PaymentMethod   string     `json:"paymentMethod"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  if len(req.PromptIDs) == 0 {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt IDs are required"})
    return
  }
  promptIDs := make([]uuid.UUID, 0, len(req.PromptIDs))
  for _, raw := range req.PromptIDs {
    id, pErr := uuid.Parse(raw)
    if pErr != nil {
      c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt IDs are required"})
      return
    }
    promptIDs = append(promptIDs, id)
  }
  result, err := ph.purchaseService.Checkout(c.Request.Context(), promptIDs, req.PaymentMethod)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{
    "success":       true,
    "purchases":     result.Purchases,
    "totalAmount":   result.TotalAmount,
  })
}

func (ph *PurchaseHandler) List(c *gin.Context) {
  purchases, err := ph.purchaseService.ListPurchases(c.Request.Context())
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, purchases)
}
