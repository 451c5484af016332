package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remotcyberhelp/internal/domain/blog"
	apperrors "remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
	"remotcyberhelp/internal/shared/services/markdown"
)

type memoryPosts struct {
	posts       map[string]*blog.Post
	viewsErr    error
	lastFilter  blog.Filter
	incremented []string
}

func newMemoryPosts() *memoryPosts {
	return &memoryPosts{posts: map[string]*blog.Post{}}
}

func (m *memoryPosts) Create(_ context.Context, p *blog.Post) error {
	m.posts[p.ID()] = p
	return nil
}

func (m *memoryPosts) Update(_ context.Context, p *blog.Post) error {
	m.posts[p.ID()] = p
	return nil
}

func (m *memoryPosts) Delete(_ context.Context, id string) error {
	delete(m.posts, id)
	return nil
}

func (m *memoryPosts) GetByID(_ context.Context, id string) (*blog.Post, error) {
	if p, ok := m.posts[id]; ok {
		return p, nil
	}
	return nil, apperrors.NewNotFoundError("post not found")
}

func (m *memoryPosts) GetBySlug(_ context.Context, slug string) (*blog.Post, error) {
	for _, p := range m.posts {
		if p.Slug() == slug {
			return p, nil
		}
	}
	return nil, apperrors.NewNotFoundError("post not found")
}

func (m *memoryPosts) ExistsBySlug(_ context.Context, slug string) (bool, error) {
	for _, p := range m.posts {
		if p.Slug() == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryPosts) List(_ context.Context, f blog.Filter) ([]*blog.Post, int64, error) {
	m.lastFilter = f
	var out []*blog.Post
	for _, p := range m.posts {
		if f.Status == nil || p.Status() == *f.Status {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memoryPosts) IncrementViews(_ context.Context, id string) error {
	if m.viewsErr != nil {
		return m.viewsErr
	}
	m.incremented = append(m.incremented, id)
	return nil
}

func (m *memoryPosts) Categories(context.Context) ([]blog.CategoryCount, error) {
	return nil, nil
}

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newCreate(repo blog.Repository) *CreatePostUseCase {
	uc := NewCreatePostUseCase(repo, markdown.NewRenderer(), logger.NewNopLogger())
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestCreatePost(t *testing.T) {
	repo := newMemoryPosts()
	uc := newCreate(repo)

	first, err := uc.Execute(context.Background(), PostCommand{
		Title:    "Protecting Your Small Business from Ransomware",
		Content:  "# Backups\n\nKeep **offline** copies.",
		Category: "Security Tips",
		Tags:     []string{"Ransomware", "backups", "ransomware"},
		Status:   "published",
	})
	require.NoError(t, err)
	assert.Equal(t, "protecting-your-small-business-from-ransomware", first.Slug)
	assert.Equal(t, "security-tips", first.Category)
	assert.Equal(t, []string{"ransomware", "backups"}, first.Tags)
	assert.Contains(t, first.ContentHTML, "<strong>offline</strong>")
	require.NotNil(t, first.PublishedAt)

	second, err := uc.Execute(context.Background(), PostCommand{
		Title:   "Protecting your small business from ransomware!",
		Content: "Part two.",
	})
	require.NoError(t, err)
	assert.Equal(t, "protecting-your-small-business-from-ransomware-2", second.Slug)
	assert.Equal(t, "draft", second.Status)
	assert.Nil(t, second.PublishedAt)

	_, err = uc.Execute(context.Background(), PostCommand{Title: "x", Content: "y", Status: "archived"})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), PostCommand{Title: "No body"})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestUpdatePost(t *testing.T) {
	repo := newMemoryPosts()
	created, err := newCreate(repo).Execute(context.Background(), PostCommand{Title: "Draft post", Content: "Body"})
	require.NoError(t, err)

	uc := NewUpdatePostUseCase(repo, markdown.NewRenderer(), logger.NewNopLogger())
	got, err := uc.Execute(context.Background(), created.ID, PostCommand{
		Title: "Renamed post", Content: "New body", Status: "published",
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed post", got.Title)
	assert.Equal(t, "draft-post", got.Slug)
	assert.Equal(t, "published", got.Status)

	_, err = uc.Execute(context.Background(), "missing", PostCommand{Title: "a", Content: "b"})
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestGetPostBySlug(t *testing.T) {
	repo := newMemoryPosts()
	create := newCreate(repo)
	_, err := create.Execute(context.Background(), PostCommand{Title: "Live", Content: "Body", Status: "published"})
	require.NoError(t, err)
	_, err = create.Execute(context.Background(), PostCommand{Title: "Hidden", Content: "Body"})
	require.NoError(t, err)

	uc := NewGetPostUseCase(repo, logger.NewNopLogger())

	got, err := uc.BySlug(context.Background(), "live", false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)
	assert.Len(t, repo.incremented, 1)

	_, err = uc.BySlug(context.Background(), "hidden", false)
	assert.True(t, apperrors.IsNotFoundError(err))

	draft, err := uc.BySlug(context.Background(), "hidden", true)
	require.NoError(t, err)
	assert.Equal(t, "draft", draft.Status)
	assert.Len(t, repo.incremented, 1, "drafts do not count views")

	repo.viewsErr = errors.New("counter down")
	got, err = uc.BySlug(context.Background(), "live", false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Views)
}

func TestListPosts(t *testing.T) {
	repo := newMemoryPosts()
	create := newCreate(repo)
	_, err := create.Execute(context.Background(), PostCommand{Title: "One", Content: "Body", Status: "published"})
	require.NoError(t, err)
	_, err = create.Execute(context.Background(), PostCommand{Title: "Two", Content: "Body"})
	require.NoError(t, err)

	uc := NewListPostsUseCase(repo, logger.NewNopLogger())

	page, err := uc.Execute(context.Background(), ListPostsQuery{PublishedOnly: true, Status: "draft", Category: "Security Tips"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Empty(t, page.Items[0].ContentHTML)
	assert.Equal(t, "security-tips", repo.lastFilter.Category)
	assert.Equal(t, "publishedAt", repo.lastFilter.SortBy)

	all, err := uc.Execute(context.Background(), ListPostsQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)

	_, err = uc.Execute(context.Background(), ListPostsQuery{Status: "deleted"})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestDeletePostAndCategories(t *testing.T) {
	repo := newMemoryPosts()
	created, err := newCreate(repo).Execute(context.Background(), PostCommand{Title: "Gone", Content: "Body"})
	require.NoError(t, err)

	del := NewDeletePostUseCase(repo, logger.NewNopLogger())
	require.NoError(t, del.Execute(context.Background(), created.ID))
	assert.True(t, apperrors.IsNotFoundError(del.Execute(context.Background(), created.ID)))

	cats, err := NewListCategoriesUseCase(repo).Execute(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, cats)
	assert.Empty(t, cats)
}
