package services

import (
  "context"
  "errors"
  "fmt"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/interface8/Prompt-8/internal/apierr"
  "github.com/interface8/Prompt-8/internal/logger"
  "github.com/interface8/Prompt-8/internal/repos"
  "github.com/interface8/Prompt-8/internal/types"
)

type CartService interface {
  GetCart(ctx context.Context) (*types.Cart, error)
  AddToCart(ctx context.Context, promptID uuid.UUID) (*types.CartItem, error)
  RemoveFromCart(ctx context.Context, promptID uuid.UUID) error
}

type cartService struct {
  db             *gorm.DB
  log            *logger.Logger
  userRepo       repos.UserRepo
  promptRepo     repos.PromptRepo
  cartRepo       repos.CartRepo
  cartItemRepo   repos.CartItemRepo
  purchaseRepo   repos.PurchaseRepo
}

func NewCartService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  promptRepo repos.PromptRepo,
  cartRepo repos.CartRepo,
  cartItemRepo repos.CartItemRepo,
  purchaseRepo repos.PurchaseRepo,
) CartService {
  serviceLog := log.With("service", "CartService")
  return &cartService{
    db:             db,
    log:            serviceLog,
    userRepo:       userRepo,
    promptRepo:     promptRepo,
    cartRepo:       cartRepo,
    cartItemRepo:   cartItemRepo,
    purchaseRepo:   purchaseRepo,
  }
}

// GetCart returns the user's cart with full prompt payloads; a user with no
// cart row yet gets an empty cart rather than an error.
func (cs *cartService) GetCart(ctx context.Context) (*types.Cart, error) {
  user, uErr := currentUser(ctx, cs.userRepo)
  if uErr != nil {
    return nil, uErr
  }

  cart, cErr := cs.cartRepo.GetWithItems(ctx, nil, user.ID)
  if cErr != nil {
    return nil, apierr.Internal(fmt.Errorf("Failed to fetch cart: %w", cErr))
  }
  if cart == nil {
    return &types.Cart{Items: []types.CartItem{}}, nil
  }
  if cart.Items == nil {
    cart.Items = []types.CartItem{}
  }
  return cart, nil
}

func (cs *cartService) AddToCart(ctx context.Context, promptID uuid.UUID) (*types.CartItem, error) {
  user, uErr := currentUser(ctx, cs.userRepo)
  if uErr != nil {
    return nil, uErr
  }

  prompts, pErr := cs.promptRepo.GetByIDs(ctx, nil, []uuid.UUID{promptID})
  if pErr != nil {
    return nil, apierr.Internal(fmt.Errorf("Failed to fetch prompt: %w", pErr))
  }
  if len(prompts) == 0 || !prompts[0].IsSellable {
    return nil, apierr.NotFound(fmt.Errorf("Prompt not available for purchase"))
  }

  owned, oErr := cs.purchaseRepo.GetByUserAndPrompts(ctx, nil, user.ID, []uuid.UUID{promptID})
  if oErr != nil {
    return nil, apierr.Internal(fmt.Errorf("Failed to check purchases: %w", oErr))
  }
  if len(owned) > 0 {
    return nil, apierr.Conflict(fmt.Errorf("You already own this prompt"))
  }

  var itemID uuid.UUID
  err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    cart, cErr := cs.cartRepo.GetByUserID(ctx, tx, user.ID)
    if cErr != nil {
      return apierr.Internal(fmt.Errorf("Failed to fetch cart: %w", cErr))
    }
    if cart == nil {
      created, ccErr := cs.cartRepo.Create(ctx, tx, []*types.Cart{{ID: uuid.New(), UserID: user.ID}})
      if ccErr != nil {
        return apierr.Internal(fmt.Errorf("Failed to create cart: %w", ccErr))
      }
      cart = created[0]
    }

    existing, eErr := cs.cartItemRepo.GetByCartAndPrompt(ctx, tx, cart.ID, promptID)
    if eErr != nil {
      return apierr.Internal(fmt.Errorf("Failed to check cart items: %w", eErr))
    }
    if existing != nil {
      return apierr.Conflict(fmt.Errorf("Item already in cart"))
    }

    item := &types.CartItem{ID: uuid.New(), CartID: cart.ID, PromptID: promptID}
    if _, icErr := cs.cartItemRepo.Create(ctx, tx, []*types.CartItem{item}); icErr != nil {
      // The composite unique index is the authoritative guard; a concurrent
      // add lands here rather than in the existence check above.
      if errors.Is(icErr, gorm.ErrDuplicatedKey) {
        return apierr.Conflict(fmt.Errorf("Item already in cart"))
      }
      return apierr.Internal(fmt.Errorf("Failed to add cart item: %w", icErr))
    }
    itemID = item.ID
    return nil
  })
  if err != nil {
    var ae *apierr.Error
    if errors.As(err, &ae) {
      return nil, ae
    }
    return nil, apierr.Internal(err)
  }

  item, iErr := cs.cartItemRepo.GetDetailedByID(ctx, nil, itemID)
  if iErr != nil {
    return nil, apierr.Internal(fmt.Errorf("Failed to reload cart item: %w", iErr))
  }
  return item, nil
}

// RemoveFromCart is idempotent: deleting zero rows is still success.
func (cs *cartService) RemoveFromCart(ctx context.Context, promptID uuid.UUID) error {
  user, uErr := currentUser(ctx, cs.userRepo)
  if uErr != nil {
    return uErr
  }

  cart, cErr := cs.cartRepo.GetByUserID(ctx, nil, user.ID)
  if cErr != nil {
    return apierr.Internal(fmt.Errorf("Failed to fetch cart: %w", cErr))
  }
  if cart == nil {
    return apierr.NotFound(fmt.Errorf("Cart not found"))
  }

  if dErr := cs.cartItemRepo.DeleteByCartAndPrompts(ctx, nil, cart.ID, []uuid.UUID{promptID}); dErr != nil {
    return apierr.Internal(fmt.Errorf("Failed to remove cart item: %w", dErr))
  }
  return nil
}
