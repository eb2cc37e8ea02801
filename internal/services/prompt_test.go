package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/interface8/Prompt-8/internal/types"
)

func creatorInput(title string) CreatePromptInput {
	return CreatePromptInput{
		Title:       title,
		Description: "Writes a greeting",
		Domain:      "Development",
		Template:    "Hello {{name}}, welcome to {{place}}",
		Price:       4.99,
		Parameters: []ParameterInput{
			{Name: "name", Type: "text", Description: "Who to greet"},
			{Name: "place", Type: "text", Description: "Where"},
		},
		Models: []ModelInput{
			{Name: "gpt-4", Provider: "OpenAI", Recommended: true},
		},
	}
}

func TestCreatePrompt(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t, types.RoleCreator)

	prompt, err := env.promptSvc.CreatePrompt(ctxFor(creator), creatorInput("Greeting Builder"))
	if err != nil {
		t.Fatalf("CreatePrompt: %v", err)
	}
	if prompt.Slug != "greeting-builder" {
		t.Fatalf("expected slug greeting-builder, got %q", prompt.Slug)
	}
	if !prompt.IsSellable {
		t.Fatalf("expected priced prompt to be sellable")
	}
	if prompt.Status != types.PromptStatusPendingReview {
		t.Fatalf("expected pending review status, got %q", prompt.Status)
	}
	if len(prompt.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(prompt.Parameters))
	}
	if len(prompt.Models) != 1 {
		t.Fatalf("expected 1 model recommendation, got %d", len(prompt.Models))
	}
	if prompt.TypeID == nil {
		t.Fatalf("expected prompt bound to a type")
	}
}

func TestCreatePromptSlugCollision(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t, types.RoleCreator)

	first, err := env.promptSvc.CreatePrompt(ctxFor(creator), creatorInput("Greeting Builder"))
	if err != nil {
		t.Fatalf("first CreatePrompt: %v", err)
	}
	second, err := env.promptSvc.CreatePrompt(ctxFor(creator), creatorInput("Greeting Builder"))
	if err != nil {
		t.Fatalf("second CreatePrompt: %v", err)
	}
	if first.Slug != "greeting-builder" || second.Slug != "greeting-builder-1" {
		t.Fatalf("expected suffixed slug, got %q and %q", first.Slug, second.Slug)
	}
}

func TestCreatePromptRequiresCreatorRole(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.seedUser(t, types.RoleUser)

	_, err := env.promptSvc.CreatePrompt(ctxFor(buyer), creatorInput("Greeting Builder"))
	wantStatus(t, err, http.StatusForbidden)
}

func TestCreatePromptValidatesRequiredFields(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t, types.RoleCreator)

	input := creatorInput("Greeting Builder")
	input.Template = ""
	_, err := env.promptSvc.CreatePrompt(ctxFor(creator), input)
	wantStatus(t, err, http.StatusBadRequest)
}

func TestGetPromptByIDAndSlug(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t, types.RoleCreator)

	created, err := env.promptSvc.CreatePrompt(ctxFor(creator), creatorInput("Greeting Builder"))
	if err != nil {
		t.Fatalf("CreatePrompt: %v", err)
	}

	byID, err := env.promptSvc.GetPrompt(context.Background(), created.ID.String())
	if err != nil {
		t.Fatalf("GetPrompt by id: %v", err)
	}
	if byID.ID != created.ID {
		t.Fatalf("expected prompt %s, got %s", created.ID, byID.ID)
	}

	bySlug, err := env.promptSvc.GetPrompt(context.Background(), created.Slug)
	if err != nil {
		t.Fatalf("GetPrompt by slug: %v", err)
	}
	if bySlug.ID != created.ID {
		t.Fatalf("expected prompt %s, got %s", created.ID, bySlug.ID)
	}

	_, err = env.promptSvc.GetPrompt(context.Background(), "no-such-slug")
	wantStatus(t, err, http.StatusNotFound)
}

func TestRenderPreview(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t, types.RoleCreator)

	created, err := env.promptSvc.CreatePrompt(ctxFor(creator), creatorInput("Greeting Builder"))
	if err != nil {
		t.Fatalf("CreatePrompt: %v", err)
	}

	preview, err := env.promptSvc.RenderPreview(ctxFor(creator), created.Slug, map[string]string{"name": "Ada"})
	if err != nil {
		t.Fatalf("RenderPreview: %v", err)
	}
	if preview != "Hello Ada, welcome to [place]" {
		t.Fatalf("unexpected preview %q", preview)
	}
}

func TestListPromptsExcludesHidden(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t, types.RoleCreator)
	env.seedPrompt(t, creator, 9.99)

	hidden := env.seedPrompt(t, creator, 9.99)
	if err := env.db.Model(&types.Prompt{}).Where("id = ?", hidden.ID).Update("is_private", true).Error; err != nil {
		t.Fatalf("mark private: %v", err)
	}

	listed, err := env.promptSvc.ListPrompts(context.Background())
	if err != nil {
		t.Fatalf("ListPrompts: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 public prompt, got %d", len(listed))
	}
	if listed[0].ID == hidden.ID {
		t.Fatalf("private prompt leaked into listing")
	}
}

func TestListCategories(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t, types.RoleCreator)

	if _, err := env.promptSvc.CreatePrompt(ctxFor(creator), creatorInput("Greeting Builder")); err != nil {
		t.Fatalf("CreatePrompt: %v", err)
	}

	roots, err := env.promptSvc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(roots) != 1 || roots[0].Name != "Development" {
		t.Fatalf("expected the Development category, got %+v", roots)
	}
}
