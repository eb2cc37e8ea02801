package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/interface8/Prompt-8/internal/apierr"
	"github.com/interface8/Prompt-8/internal/types"
)

func wantStatus(t *testing.T, err error, status int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", status)
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected apierr, got %T: %v", err, err)
	}
	if ae.Status != status {
		t.Fatalf("expected status %d, got %d (%v)", status, ae.Status, err)
	}
}

func TestGetCartWithoutCartRow(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.seedUser(t, types.RoleUser)

	cart, err := env.cart.GetCart(ctxFor(buyer))
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if cart.Items == nil || len(cart.Items) != 0 {
		t.Fatalf("expected empty items, got %+v", cart.Items)
	}
}

func TestAddToCart(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t, types.RoleCreator)
	buyer := env.seedUser(t, types.RoleUser)
	prompt := env.seedPrompt(t, creator, 9.99)

	item, err := env.cart.AddToCart(ctxFor(buyer), prompt.ID)
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if item.PromptID != prompt.ID {
		t.Fatalf("item references prompt %s, want %s", item.PromptID, prompt.ID)
	}
	if item.Prompt == nil || item.Prompt.User == nil {
		t.Fatalf("expected prompt and owner attached to item, got %+v", item)
	}

	cart, err := env.cart.GetCart(ctxFor(buyer))
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(cart.Items))
	}
}

func TestAddToCartTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t, types.RoleCreator)
	buyer := env.seedUser(t, types.RoleUser)
	prompt := env.seedPrompt(t, creator, 9.99)

	if _, err := env.cart.AddToCart(ctxFor(buyer), prompt.ID); err != nil {
		t.Fatalf("first AddToCart: %v", err)
	}
	_, err := env.cart.AddToCart(ctxFor(buyer), prompt.ID)
	wantStatus(t, err, http.StatusBadRequest)

	cart, gErr := env.cart.GetCart(ctxFor(buyer))
	if gErr != nil {
		t.Fatalf("GetCart: %v", gErr)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected exactly 1 item after duplicate add, got %d", len(cart.Items))
	}
}

func TestAddToCartUnsellablePrompt(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t, types.RoleCreator)
	buyer := env.seedUser(t, types.RoleUser)
	free := env.seedPrompt(t, creator, 0)

	_, err := env.cart.AddToCart(ctxFor(buyer), free.ID)
	wantStatus(t, err, http.StatusNotFound)
}

func TestAddToCartMissingPrompt(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.seedUser(t, types.RoleUser)

	_, err := env.cart.AddToCart(ctxFor(buyer), uuid.New())
	wantStatus(t, err, http.StatusNotFound)
}

func TestAddToCartAlreadyPurchased(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t, types.RoleCreator)
	buyer := env.seedUser(t, types.RoleUser)
	prompt := env.seedPrompt(t, creator, 9.99)

	if _, err := env.purchase.Checkout(ctxFor(buyer), []uuid.UUID{prompt.ID}, ""); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	_, err := env.cart.AddToCart(ctxFor(buyer), prompt.ID)
	wantStatus(t, err, http.StatusBadRequest)
}

func TestAddToCartWriteFailureIsInternal(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t, types.RoleCreator)
	buyer := env.seedUser(t, types.RoleUser)
	prompt := env.seedPrompt(t, creator, 9.99)

	env.blockInserts(t, "cart_item")

	_, err := env.cart.AddToCart(ctxFor(buyer), prompt.ID)
	wantStatus(t, err, http.StatusInternalServerError)
}

func TestRemoveFromCart(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t, types.RoleCreator)
	buyer := env.seedUser(t, types.RoleUser)
	prompt := env.seedPrompt(t, creator, 9.99)

	if _, err := env.cart.AddToCart(ctxFor(buyer), prompt.ID); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if err := env.cart.RemoveFromCart(ctxFor(buyer), prompt.ID); err != nil {
		t.Fatalf("RemoveFromCart: %v", err)
	}
	// Removing again is a no-op, not an error.
	if err := env.cart.RemoveFromCart(ctxFor(buyer), prompt.ID); err != nil {
		t.Fatalf("idempotent RemoveFromCart: %v", err)
	}

	cart, err := env.cart.GetCart(ctxFor(buyer))
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}
}

func TestRemoveFromCartWithoutCart(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.seedUser(t, types.RoleUser)

	err := env.cart.RemoveFromCart(ctxFor(buyer), uuid.New())
	wantStatus(t, err, http.StatusNotFound)
}

func TestCartRequiresIdentity(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.cart.GetCart(context.Background())
	wantStatus(t, err, http.StatusUnauthorized)
}
