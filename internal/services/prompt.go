package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "strings"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/interface8/Prompt-8/internal/apierr"
  "github.com/interface8/Prompt-8/internal/clients/redis"
  "github.com/interface8/Prompt-8/internal/logger"
  "github.com/interface8/Prompt-8/internal/repos"
  "github.com/interface8/Prompt-8/internal/requestdata"
  "github.com/interface8/Prompt-8/internal/template"
  "github.com/interface8/Prompt-8/internal/types"
  "github.com/interface8/Prompt-8/internal/utils"
)

type ParameterInput struct {
  Name          string     `json:"name"`
  Type          string     `json:"type"`
  Description   string     `json:"description"`
  Required      *bool      `json:"required"`
  Placeholder   string     `json:"placeholder"`
  Options       []string   `json:"options"`
}

type ModelInput struct {
  Name          string   `json:"name"`
  Provider      string   `json:"provider"`
  Efficiency    *int     `json:"efficiency"`
  Recommended   bool     `json:"recommended"`
}

type CreatePromptInput struct {
  Title          string             `json:"title"`
  Description    string             `json:"description"`
  Domain         string             `json:"domain"`
  Category       string             `json:"category"`
  SkillLevel     string             `json:"skillLevel"`
  Price          float64            `json:"price"`
  License        string             `json:"license"`
  Tags           []string           `json:"tags"`
  Template       string             `json:"template"`
  SampleOutput   string             `json:"sampleOutput"`
  IsPrivate      bool               `json:"isPrivate"`
  Parameters     []ParameterInput   `json:"parameters"`
  Models         []ModelInput       `json:"models"`
}

type PromptService interface {
  CreatePrompt(ctx context.Context, input CreatePromptInput) (*types.Prompt, error)
  ListPrompts(ctx context.Context) ([]*types.Prompt, error)
  GetPrompt(ctx context.Context, idOrSlug string) (*types.Prompt, error)
  ListCategories(ctx context.Context) ([]*types.PromptType, error)
  RenderPreview(ctx context.Context, idOrSlug string, values map[string]string) (string, error)
}

type promptService struct {
  db               *gorm.DB
  log              *logger.Logger
  userRepo         repos.UserRepo
  promptRepo       repos.PromptRepo
  promptTypeRepo   repos.PromptTypeRepo
  parameterRepo    repos.ParameterRepo
  modelRecRepo     repos.ModelRecRepo
  cache            redis.ListingCache
}

func NewPromptService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  promptRepo repos.PromptRepo,
  promptTypeRepo repos.PromptTypeRepo,
  parameterRepo repos.ParameterRepo,
  modelRecRepo repos.ModelRecRepo,
  cache redis.ListingCache,
) PromptService {
  serviceLog := log.With("service", "PromptService")
  return &promptService{
    db:               db,
    log:              serviceLog,
    userRepo:         userRepo,
    promptRepo:       promptRepo,
    promptTypeRepo:   promptTypeRepo,
    parameterRepo:    parameterRepo,
    modelRecRepo:     modelRecRepo,
    cache:            cache,
  }
}

func (ps *promptService) CreatePrompt(ctx context.Context, input CreatePromptInput) (*types.Prompt, error) {
  user, uErr := currentUser(ctx, ps.userRepo)
  if uErr != nil {
    return nil, uErr
  }
  if user.Role != types.RoleCreator && user.Role != types.RoleAdmin {
    return nil, apierr.Forbidden(fmt.Errorf("Only creators can create prompts"))
  }

  if input.Title == "" || input.Description == "" || input.Domain == "" || input.Template == "" {
    return nil, apierr.Validation(fmt.Errorf("Missing required fields"))
  }

  slug, sErr := ps.uniqueSlug(ctx, input.Title)
  if sErr != nil {
    return nil, apierr.Internal(sErr)
  }

  skillLevel := strings.ToUpper(strings.TrimSpace(input.SkillLevel))
  switch skillLevel {
  case types.SkillBeginner, types.SkillIntermediate, types.SkillAdvanced:
  default:
    skillLevel = types.SkillBeginner
  }

  category := input.Category
  if category == "" {
    category = "General"
  }
  license := input.License
  if license == "" {
    license = "Commercial Use Allowed"
  }

  tags := input.Tags
  if tags == nil {
    tags = []string{}
  }
  tagsJSON, mErr := json.Marshal(tags)
  if mErr != nil {
    return nil, apierr.Internal(fmt.Errorf("Failed to encode tags: %w", mErr))
  }

  prompt := &types.Prompt{
    ID:             uuid.New(),
    UserID:         user.ID,
    Title:          input.Title,
    Slug:           slug,
    Description:    input.Description,
    Template:       input.Template,
    Domain:         input.Domain,
    Category:       category,
    SkillLevel:     skillLevel,
    Price:          input.Price,
    Currency:       "USD",
    License:        license,
    Tags:           datatypes.JSON(tagsJSON),
    SampleOutput:   input.SampleOutput,
    Status:         types.PromptStatusPendingReview,
    IsPrivate:      input.IsPrivate,
    IsSellable:     input.Price > 0,
  }

  err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    promptType, ptErr := ps.getOrCreateType(ctx, tx, input.Domain)
    if ptErr != nil {
      return fmt.Errorf("Failed to resolve prompt type: %w", ptErr)
    }
    prompt.TypeID = &promptType.ID

    if _, pcErr := ps.promptRepo.Create(ctx, tx, []*types.Prompt{prompt}); pcErr != nil {
      return fmt.Errorf("Failed to create prompt: %w", pcErr)
    }

    params := make([]*types.Parameter, 0, len(input.Parameters))
    for i, p := range input.Parameters {
      if p.Name == "" {
        return apierr.Validation(fmt.Errorf("Parameter name is required"))
      }
      kind := strings.ToUpper(strings.TrimSpace(p.Type))
      switch kind {
      case types.ParamText, types.ParamNumber, types.ParamSelect, types.ParamTextarea:
      default:
        kind = types.ParamText
      }
      required := true
      if p.Required != nil {
        required = *p.Required
      }
      options := p.Options
      if options == nil {
        options = []string{}
      }
      optionsJSON, oErr := json.Marshal(options)
      if oErr != nil {
        return fmt.Errorf("Failed to encode parameter options: %w", oErr)
      }
      params = append(params, &types.Parameter{
        ID:            uuid.New(),
        PromptID:      prompt.ID,
        Name:          p.Name,
        Type:          kind,
        Description:   p.Description,
        Required:      required,
        Placeholder:   p.Placeholder,
        Options:       datatypes.JSON(optionsJSON),
        Position:      i,
      })
    }
    if _, paErr := ps.parameterRepo.Create(ctx, tx, params); paErr != nil {
      return fmt.Errorf("Failed to create parameters: %w", paErr)
    }

    models := make([]*types.ModelRec, 0, len(input.Models))
    for _, m := range input.Models {
      efficiency := 85
      if m.Efficiency != nil {
        efficiency = *m.Efficiency
      }
      models = append(models, &types.ModelRec{
        ID:            uuid.New(),
        PromptID:      prompt.ID,
        Name:          m.Name,
        Provider:      m.Provider,
        Efficiency:    efficiency,
        Recommended:   m.Recommended,
      })
    }
    if _, mcErr := ps.modelRecRepo.Create(ctx, tx, models); mcErr != nil {
      return fmt.Errorf("Failed to create model recommendations: %w", mcErr)
    }
    return nil
  })
  if err != nil {
    var ae *apierr.Error
    if errors.As(err, &ae) {
      return nil, ae
    }
    return nil, apierr.Internal(err)
  }

  if ps.cache != nil {
    ps.cache.Invalidate(ctx)
  }

  complete, gErr := ps.promptRepo.GetDetailedByID(ctx, nil, prompt.ID)
  if gErr != nil {
    return nil, apierr.Internal(fmt.Errorf("Failed to reload created prompt: %w", gErr))
  }
  return complete, nil
}

func (ps *promptService) ListPrompts(ctx context.Context) ([]*types.Prompt, error) {
  if ps.cache != nil {
    if prompts, ok := ps.cache.GetListing(ctx); ok {
      return prompts, nil
    }
  }
  prompts, err := ps.promptRepo.ListPublic(ctx, nil)
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("Failed to list prompts: %w", err))
  }
  if ps.cache != nil {
    ps.cache.SetListing(ctx, prompts)
  }
  return prompts, nil
}

// GetPrompt resolves by id first, then by slug, matching the public URL shape.
func (ps *promptService) GetPrompt(ctx context.Context, idOrSlug string) (*types.Prompt, error) {
  if id, pErr := uuid.Parse(idOrSlug); pErr == nil {
    prompt, err := ps.promptRepo.GetDetailedByID(ctx, nil, id)
    if err == nil {
      return prompt, nil
    }
    if !errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apierr.Internal(fmt.Errorf("Failed to fetch prompt: %w", err))
    }
  }
  prompt, err := ps.promptRepo.GetDetailedBySlug(ctx, nil, idOrSlug)
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, apierr.NotFound(fmt.Errorf("Prompt not found"))
  }
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("Failed to fetch prompt: %w", err))
  }
  return prompt, nil
}

func (ps *promptService) ListCategories(ctx context.Context) ([]*types.PromptType, error) {
  roots, err := ps.promptTypeRepo.ListRoots(ctx, nil)
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("Failed to list categories: %w", err))
  }
  return roots, nil
}

func (ps *promptService) RenderPreview(ctx context.Context, idOrSlug string, values map[string]string) (string, error) {
  prompt, err := ps.GetPrompt(ctx, idOrSlug)
  if err != nil {
    return "", err
  }
  return template.Render(prompt.Template, prompt.Parameters, values), nil
}

func (ps *promptService) uniqueSlug(ctx context.Context, title string) (string, error) {
  base := utils.Slugify(title)
  if base == "" {
    base = "prompt"
  }
  slug := base
  for counter := 1; ; counter++ {
    exists, err := ps.promptRepo.SlugExists(ctx, nil, slug)
    if err != nil {
      return "", fmt.Errorf("Failed to check slug: %w", err)
    }
    if !exists {
      return slug, nil
    }
    slug = fmt.Sprintf("%s-%d", base, counter)
  }
}

func (ps *promptService) getOrCreateType(ctx context.Context, tx *gorm.DB, name string) (*types.PromptType, error) {
  found, err := ps.promptTypeRepo.GetByNames(ctx, tx, []string{name})
  if err != nil {
    return nil, err
  }
  if len(found) > 0 {
    return found[0], nil
  }
  created, cErr := ps.promptTypeRepo.Create(ctx, tx, []*types.PromptType{{ID: uuid.New(), Name: name}})
  if cErr != nil {
    return nil, cErr
  }
  return created[0], nil
}

// currentUser resolves the authenticated user record from request context.
func currentUser(ctx context.Context, userRepo repos.UserRepo) (*types.User, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, apierr.Unauthorized(fmt.Errorf("Unauthorized"))
  }
  users, err := userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, apierr.Internal(fmt.Errorf("Failed to load user: %w", err))
  }
  if len(users) == 0 {
    return nil, apierr.NotFound(fmt.Errorf("User not found"))
  }
  return users[0], nil
}
