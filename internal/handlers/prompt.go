package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/interface8/Prompt-8/internal/services"
)

type PromptHandler struct {
  promptService   services.PromptService
}

func NewPromptHandler(promptService services.PromptService) *PromptHandler {
  return &PromptHandler{promptService: promptService}
}

func (ph *PromptHandler) Create(c *gin.Context) {
  var input services.CreatePromptInput
  if err := c.ShouldBindJSON(&input); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  prompt, err := ph.promptService.CreatePrompt(c.Request.Context(), input)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusCreated, prompt)
}

func (ph *PromptHandler) List(c *gin.Context) {
  prompts, err := ph.promptService.ListPrompts(c.Request.Context())
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, prompts)
}

func (ph *PromptHandler) Get(c *gin.Context) {
  prompt, err := ph.promptService.GetPrompt(c.Request.Context(), c.Param("promptId"))
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, prompt)
}

func (ph *PromptHandler) ListCategories(c *gin.Context) {
  categories, err := ph.promptService.ListCategories(c.Request.Context())
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, categories)
}

func (ph *PromptHandler) Render(c *gin.Context) {
  var req struct {
    Values   map[string]string   `json:"values"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  preview, err := ph.promptService.RenderPreview(c.Request.Context(), c.Param("promptId"), req.Values)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"preview": preview})
}
