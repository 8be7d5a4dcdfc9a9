package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/avelora/storefront/internal/blog/domain"
	"github.com/avelora/storefront/internal/blog/repository"
	"github.com/avelora/storefront/internal/blog/usecase/query"
)

func setupPosts(t *testing.T) *repository.GormPostRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	repo := repository.NewGormPostRepository(db)
	require.NoError(t, repo.AutoMigrate())
	return repo
}

func TestCreatePostStartsAsDraft(t *testing.T) {
	repo := setupPosts(t)
	handler := NewCreatePostHandler(repo)

	post, err := handler.Handle(context.Background(), CreatePostCommand{
		Title:    "Autumn Lookbook 2026",
		Body:     "...",
		AuthorID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, post.Status)
	assert.Equal(t, "autumn-lookbook-2026", post.Slug)
	assert.Nil(t, post.PublishedAt)
}

func TestCreatePostDuplicateSlug(t *testing.T) {
	repo := setupPosts(t)
	handler := NewCreatePostHandler(repo)
	ctx := context.Background()

	_, err := handler.Handle(ctx, CreatePostCommand{Title: "Same Title"})
	require.NoError(t, err)

	_, err = handler.Handle(ctx, CreatePostCommand{Title: "Same Title"})
	assert.ErrorIs(t, err, domain.ErrSlugExists)
}

func TestPublishPostIsIdempotent(t *testing.T) {
	repo := setupPosts(t)
	create := NewCreatePostHandler(repo)
	publish := NewPublishPostHandler(repo)
	ctx := context.Background()

	post, err := create.Handle(ctx, CreatePostCommand{Title: "Draft"})
	require.NoError(t, err)

	published, err := publish.Handle(ctx, PublishPostCommand{ID: post.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)
	firstPublishedAt := *published.PublishedAt

	again, err := publish.Handle(ctx, PublishPostCommand{ID: post.ID})
	require.NoError(t, err)
	require.NotNil(t, again.PublishedAt)
	assert.Equal(t, firstPublishedAt, *again.PublishedAt)
}

func TestDraftsHiddenFromStorefront(t *testing.T) {
	repo := setupPosts(t)
	create := NewCreatePostHandler(repo)
	publish := NewPublishPostHandler(repo)
	ctx := context.Background()

	draft, err := create.Handle(ctx, CreatePostCommand{Title: "Hidden Draft"})
	require.NoError(t, err)
	visible, err := create.Handle(ctx, CreatePostCommand{Title: "Visible Post"})
	require.NoError(t, err)
	_, err = publish.Handle(ctx, PublishPostCommand{ID: visible.ID})
	require.NoError(t, err)

	get := query.NewGetPostHandler(repo)
	_, err = get.Handle(ctx, query.GetPostQuery{Slug: draft.Slug})
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	_, err = get.Handle(ctx, query.GetPostQuery{Slug: draft.Slug, IncludeDrafts: true})
	assert.NoError(t, err)

	list := query.NewListPostsHandler(repo)
	result, err := list.Handle(ctx, query.ListPostsQuery{})
	require.NoError(t, err)
	require.Len(t, result.Posts, 1)
	assert.Equal(t, visible.ID, result.Posts[0].ID)
}
