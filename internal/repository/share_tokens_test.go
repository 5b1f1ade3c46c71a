package repository

import (
	"context"
	"testing"

	"github.com/JashanveerS/TastyTray/internal/models"
	"github.com/JashanveerS/TastyTray/internal/testutil"
)

func TestShareTokenLookupByHash(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userID := testutil.CreateTestUser(t, db)
	repo := NewShareTokenRepository(db)
	ctx := context.Background()

	raw := "opaque-token-value"
	created, err := repo.Create(ctx, models.ShareToken{
		UserID:    userID,
		Name:      "Meal plan feed",
		TokenHash: HashToken(raw),
	})
	if err != nil {
		t.Fatalf("creating token: %v", err)
	}
	if created.Scope != "ical" {
		t.Errorf("default scope should be ical, got %s", created.Scope)
	}

	found, err := repo.FindByTokenHash(ctx, HashToken(raw))
	if err != nil {
		t.Fatalf("FindByTokenHash: %v", err)
	}
	if found.ID != created.ID || found.UserID != userID {
		t.Errorf("unexpected token: %+v", found)
	}

	if _, err := repo.FindByTokenHash(ctx, HashToken("wrong")); err == nil {
		t.Error("lookup with an unknown hash should fail")
	}
}

func TestShareTokenListAndRevoke(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userID := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	repo := NewShareTokenRepository(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, models.ShareToken{
		UserID: userID, Name: "phone", TokenHash: HashToken("token-one"),
	})
	if err != nil {
		t.Fatalf("creating first token: %v", err)
	}
	if _, err := repo.Create(ctx, models.ShareToken{
		UserID: userID, Name: "laptop", TokenHash: HashToken("token-two"),
	}); err != nil {
		t.Fatalf("creating second token: %v", err)
	}

	tokens, err := repo.FindAll(ctx, userID)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}

	// Another user's delete must not touch the token.
	if err := repo.Delete(ctx, other, first.ID); err != nil {
		t.Fatalf("cross-user delete: %v", err)
	}
	tokens, err = repo.FindAll(ctx, userID)
	if err != nil {
		t.Fatalf("FindAll after cross-user delete: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("cross-user delete should be a no-op, got %d tokens", len(tokens))
	}

	if err := repo.Delete(ctx, userID, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	tokens, err = repo.FindAll(ctx, userID)
	if err != nil {
		t.Fatalf("FindAll after delete: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Name != "laptop" {
		t.Errorf("expected only the laptop token to remain, got %v", tokens)
	}

	// The revoked token no longer authorizes a feed.
	if _, err := repo.FindByTokenHash(ctx, HashToken("token-one")); err == nil {
		t.Error("revoked token should not resolve")
	}
}
