package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/interface8/Prompt-8/internal/types"
)

func (e *testEnv) reloadPrompt(t *testing.T, id uuid.UUID) *types.Prompt {
	t.Helper()
	prompts, err := e.prompts.GetByIDs(context.Background(), nil, []uuid.UUID{id})
	if err != nil || len(prompts) != 1 {
		t.Fatalf("reload prompt %s: %v", id, err)
	}
	return prompts[0]
}

func (e *testEnv) reloadUser(t *testing.T, id uuid.UUID) *types.User {
	t.Helper()
	users, err := e.users.GetByIDs(context.Background(), nil, []uuid.UUID{id})
	if err != nil || len(users) != 1 {
		t.Fatalf("reload user %s: %v", id, err)
	}
	return users[0]
}

func TestCheckout(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t, types.RoleCreator)
	buyer := env.seedUser(t, types.RoleUser)
	first := env.seedPrompt(t, creator, 9.99)
	second := env.seedPrompt(t, creator, 5.01)

	if _, err := env.cart.AddToCart(ctxFor(buyer), first.ID); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	result, err := env.purchase.Checkout(ctxFor(buyer), []uuid.UUID{first.ID, second.ID}, "")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if len(result.Purchases) != 2 {
		t.Fatalf("expected 2 purchases, got %d", len(result.Purchases))
	}
	if result.TotalAmount != 15.00 {
		t.Fatalf("expected total 15.00, got %v", result.TotalAmount)
	}
	for _, p := range result.Purchases {
		if p.PaymentStatus != types.PaymentStatusCompleted {
			t.Fatalf("expected completed payment, got %q", p.PaymentStatus)
		}
		if p.PaymentMethod != "paystack" {
			t.Fatalf("expected default payment method, got %q", p.PaymentMethod)
		}
		if !strings.HasPrefix(p.TransactionID, "sim_") {
			t.Fatalf("unexpected transaction id %q", p.TransactionID)
		}
	}

	if got := env.reloadPrompt(t, first.ID).PurchaseCount; got != 1 {
		t.Fatalf("expected purchase count 1, got %d", got)
	}
	if got := env.reloadUser(t, creator.ID).TotalEarnings; got != 15.00 {
		t.Fatalf("expected creator earnings 15.00, got %v", got)
	}

	// Purchased prompts are removed from the buyer's cart.
	cart, cErr := env.cart.GetCart(ctxFor(buyer))
	if cErr != nil {
		t.Fatalf("GetCart: %v", cErr)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected cart cleared after checkout, got %d items", len(cart.Items))
	}
}

func TestCheckoutRejectsEmptyBatch(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.seedUser(t, types.RoleUser)

	_, err := env.purchase.Checkout(ctxFor(buyer), nil, "")
	wantStatus(t, err, http.StatusBadRequest)
}

func TestCheckoutRejectsUnsellablePrompt(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t, types.RoleCreator)
	buyer := env.seedUser(t, types.RoleUser)
	paid := env.seedPrompt(t, creator, 9.99)
	free := env.seedPrompt(t, creator, 0)

	_, err := env.purchase.Checkout(ctxFor(buyer), []uuid.UUID{paid.ID, free.ID}, "")
	wantStatus(t, err, http.StatusNotFound)

	// The whole batch is rejected: nothing was recorded for the valid prompt.
	if got := env.reloadPrompt(t, paid.ID).PurchaseCount; got != 0 {
		t.Fatalf("expected purchase count 0, got %d", got)
	}
}

func TestCheckoutRejectsOwnedPrompt(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t, types.RoleCreator)
	buyer := env.seedUser(t, types.RoleUser)
	owned := env.seedPrompt(t, creator, 9.99)
	fresh := env.seedPrompt(t, creator, 5.00)

	if _, err := env.purchase.Checkout(ctxFor(buyer), []uuid.UUID{owned.ID}, ""); err != nil {
		t.Fatalf("first Checkout: %v", err)
	}

	_, err := env.purchase.Checkout(ctxFor(buyer), []uuid.UUID{owned.ID, fresh.ID}, "")
	wantStatus(t, err, http.StatusBadRequest)

	if got := env.reloadPrompt(t, fresh.ID).PurchaseCount; got != 0 {
		t.Fatalf("expected no purchase of fresh prompt, got count %d", got)
	}
	list, lErr := env.purchase.ListPurchases(ctxFor(buyer))
	if lErr != nil {
		t.Fatalf("ListPurchases: %v", lErr)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 purchase on record, got %d", len(list))
	}
}

func TestCheckoutWriteFailureIsInternal(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t, types.RoleCreator)
	buyer := env.seedUser(t, types.RoleUser)
	prompt := env.seedPrompt(t, creator, 9.99)

	env.blockInserts(t, "purchase")

	// The buyer owns nothing, so a failing insert is a storage fault, not a
	// uniqueness conflict.
	_, err := env.purchase.Checkout(ctxFor(buyer), []uuid.UUID{prompt.ID}, "")
	wantStatus(t, err, http.StatusInternalServerError)

	if got := env.reloadPrompt(t, prompt.ID).PurchaseCount; got != 0 {
		t.Fatalf("expected no purchase recorded, got count %d", got)
	}
}

func TestCheckoutKeepsExplicitPaymentMethod(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t, types.RoleCreator)
	buyer := env.seedUser(t, types.RoleUser)
	prompt := env.seedPrompt(t, creator, 3.50)

	result, err := env.purchase.Checkout(ctxFor(buyer), []uuid.UUID{prompt.ID}, "card")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if result.Purchases[0].PaymentMethod != "card" {
		t.Fatalf("expected payment method card, got %q", result.Purchases[0].PaymentMethod)
	}
}

func TestListPurchases(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t, types.RoleCreator)
	buyer := env.seedUser(t, types.RoleUser)
	other := env.seedUser(t, types.RoleUser)
	prompt := env.seedPrompt(t, creator, 9.99)

	if _, err := env.purchase.Checkout(ctxFor(buyer), []uuid.UUID{prompt.ID}, ""); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	mine, err := env.purchase.ListPurchases(ctxFor(buyer))
	if err != nil {
		t.Fatalf("ListPurchases: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 purchase, got %d", len(mine))
	}
	if mine[0].Prompt == nil || mine[0].Prompt.ID != prompt.ID {
		t.Fatalf("expected prompt preloaded on purchase, got %+v", mine[0].Prompt)
	}

	theirs, err := env.purchase.ListPurchases(ctxFor(other))
	if err != nil {
		t.Fatalf("ListPurchases: %v", err)
	}
	if len(theirs) != 0 {
		t.Fatalf("expected no purchases for other user, got %d", len(theirs))
	}
}
