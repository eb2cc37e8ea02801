package services

import (
  "context"
  "errors"
  "fmt"
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/interface8/Prompt-8/internal/apierr"
  "github.com/interface8/Prompt-8/internal/logger"
  "github.com/interface8/Prompt-8/internal/repos"
  "github.com/interface8/Prompt-8/internal/types"
)

type CheckoutResult struct {
  Purchases     []*types.Purchase   `json:"purchases"`
  TotalAmount   float64             `json:"totalAmount"`
}

type PurchaseService interface {
  Checkout(ctx context.Context, promptIDs []uuid.UUID, paymentMethod string) (*CheckoutResult, error)
  ListPurchases(ctx context.Context) ([]*types.Purchase, error)
}

type purchaseService struct {
  db             *gorm.DB
  log            *logger.Logger
  userRepo       repos.UserRepo
  promptRepo     repos.PromptRepo
  cartRepo       repos.CartRepo
  cartItemRepo   repos.CartItemRepo
  purchaseRepo   repos.PurchaseRepo
}

func NewPurchaseService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  promptRepo repos.PromptRepo,
  cartRepo repos.CartRepo,
  cartItemRepo repos.CartItemRepo,
  purchaseRepo repos.PurchaseRepo,
) PurchaseService {
  serviceLog := log.With("service", "PurchaseService")
  return &purchaseService{
    db:             db,
    log:            serviceLog,
    userRepo:       userRepo,
    promptRepo:     promptRepo,
    cartRepo:       cartRepo,
    cartItemRepo:   cartItemRepo,
    purchaseRepo:   purchaseRepo,
  }
}

// Checkout validates the whole batch, then records every purchase, counter
// bump and cart cleanup inside one transaction. Real payment capture is out
// of scope; the transaction id is synthetic.
func (ps *purchaseService) Checkout(ctx context.Context, promptIDs []uuid.UUID, paymentMethod string) (*CheckoutResult, error) {
  user, uErr := currentUser(ctx, ps.userRepo)
  if uErr != nil {
    return nil, uErr
  }

  if len(promptIDs) == 0 {
    return nil, apierr.Validation(fmt.Errorf("Prompt IDs are required"))
  }
  if paymentMethod == "" {
    paymentMethod = "paystack"
  }

  prompts, pErr := ps.promptRepo.GetByIDs(ctx, nil, promptIDs)
  if pErr != nil {
    return nil, apierr.Internal(fmt.Errorf("Failed to fetch prompts: %w", pErr))
  }
  sellable := make(map[uuid.UUID]*types.Prompt, len(prompts))
  for _, p := range prompts {
    if p.IsSellable {
      sellable[p.ID] = p
    }
  }
  if len(sellable) != len(promptIDs) {
    return nil, apierr.NotFound(fmt.Errorf("Some prompts are not available"))
  }

  existing, eErr := ps.purchaseRepo.GetByUserAndPrompts(ctx, nil, user.ID, promptIDs)
  if eErr != nil {
    return nil, apierr.Internal(fmt.Errorf("Failed to check existing purchases: %w", eErr))
  }
  if len(existing) > 0 {
    return nil, apierr.Conflict(fmt.Errorf("You already own some of these prompts"))
  }

  var totalAmount float64
  for _, id := range promptIDs {
    totalAmount += sellable[id].Price
  }

  purchases := make([]*types.Purchase, 0, len(promptIDs))
  err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    for _, id := range promptIDs {
      prompt := sellable[id]
      purchase := &types.Purchase{
        ID:              uuid.New(),
        UserID:          user.ID,
        PromptID:        prompt.ID,
        Amount:          prompt.Price,
        Currency:        prompt.Currency,
        PaymentMethod:   paymentMethod,
        PaymentStatus:   types.PaymentStatusCompleted,
        TransactionID:   syntheticTransactionID(),
      }
      if _, cErr := ps.purchaseRepo.Create(ctx, tx, []*types.Purchase{purchase}); cErr != nil {
        // Composite unique (user_id, prompt_id) catches a concurrent buy.
        if errors.Is(cErr, gorm.ErrDuplicatedKey) {
          return apierr.Conflict(fmt.Errorf("You already own some of these prompts"))
        }
        return fmt.Errorf("Failed to record purchase: %w", cErr)
      }
      if icErr := ps.promptRepo.IncrementPurchaseCount(ctx, tx, prompt.ID); icErr != nil {
        return fmt.Errorf("Failed to increment purchase count: %w", icErr)
      }
      if ieErr := ps.userRepo.IncrementEarnings(ctx, tx, prompt.UserID, prompt.Price); ieErr != nil {
        return fmt.Errorf("Failed to increment creator earnings: %w", ieErr)
      }
      purchases = append(purchases, purchase)
    }

    cart, cErr := ps.cartRepo.GetByUserID(ctx, tx, user.ID)
    if cErr != nil {
      return fmt.Errorf("Failed to fetch cart: %w", cErr)
    }
    if cart != nil {
      if dErr := ps.cartItemRepo.DeleteByCartAndPrompts(ctx, tx, cart.ID, promptIDs); dErr != nil {
        return fmt.Errorf("Failed to clear purchased items from cart: %w", dErr)
      }
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

  ps.log.Info("Checkout completed", "user_id", user.ID, "prompts", len(promptIDs), "total", totalAmount)
  return &CheckoutResult{Purchases: purchases, TotalAmount: totalAmount}, nil
}

func (ps *purchaseService) ListPurchases(ctx context.Context) ([]*types.Purchase, error) {
  user, uErr := currentUser(ctx, ps.userRepo)
  if uErr != nil {
    return nil, uErr
  }

  purchases, lErr := ps.purchaseRepo.ListByUserID(ctx, nil, user.ID)
  if lErr != nil {
    return nil, apierr.Internal(fmt.Errorf("Failed to list purchases: %w", lErr))
  }
  return purchases, nil
}

func syntheticTransactionID() string {
  return fmt.Sprintf("sim_%d_%s", time.Now().UnixNano(), uuid.New().String()[:8])
}
