package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/utils"
)

func TestBlogRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewBlogRepo(newTestDB(t))

	older := time.Now().Add(-48 * time.Hour).UTC()
	newer := time.Now().Add(-1 * time.Hour).UTC()

	first := &models.Blog{ID: uuid.NewString(), PortfolioID: "p1", Slug: "first", Title: "First", Content: "# one", Visible: true, PublishedAt: &older}
	second := &models.Blog{ID: uuid.NewString(), PortfolioID: "p1", Slug: "second", Title: "Second", Content: "# two", Visible: true, PublishedAt: &newer}
	draft := &models.Blog{ID: uuid.NewString(), PortfolioID: "p1", Slug: "draft", Title: "Draft"}
	for _, b := range []*models.Blog{first, second, draft} {
		require.NoError(t, repo.Create(ctx, b))
	}

	dup := &models.Blog{ID: uuid.NewString(), PortfolioID: "p1", Slug: "first", Title: "Again"}
	assert.ErrorIs(t, repo.Create(ctx, dup), utils.ErrConflict)

	// same slug on another portfolio is fine
	require.NoError(t, repo.Create(ctx, &models.Blog{ID: uuid.NewString(), PortfolioID: "p2", Slug: "first", Title: "Other"}))

	published, err := repo.List(ctx, "p1", true)
	require.NoError(t, err)
	require.Len(t, published, 2)
	assert.Equal(t, "second", published[0].Slug)
	assert.Empty(t, published[0].Content)

	all, err := repo.List(ctx, "p1", false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	got, err := repo.GetBySlug(ctx, "p1", "first")
	require.NoError(t, err)
	assert.Equal(t, "# one", got.Content)

	require.NoError(t, repo.Delete(ctx, draft.ID))
	assert.ErrorIs(t, repo.Delete(ctx, draft.ID), utils.ErrNotFound)
}
