package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remotcyberhelp/internal/domain/blog"
	"remotcyberhelp/internal/domain/consultation"
	"remotcyberhelp/internal/domain/government"
	"remotcyberhelp/internal/domain/newsletter"
	"remotcyberhelp/internal/domain/workinghours"
	apperrors "remotcyberhelp/internal/shared/errors"
)

func storedPost(t *testing.T, repo *BlogRepository, slug, category string, tags []string, published bool, at time.Time) *blog.Post {
	t.Helper()
	status := string(blog.StatusDraft)
	var publishedAt *time.Time
	if published {
		status = string(blog.StatusPublished)
		publishedAt = &at
	}
	p := blog.Reconstruct(blog.State{
		ID:          slug + "-id",
		Title:       slug,
		Slug:        slug,
		Content:     "body of " + slug,
		Category:    category,
		Tags:        tags,
		Status:      status,
		PublishedAt: publishedAt,
		CreatedAt:   at,
		UpdatedAt:   at,
	})
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestBlogRepositoryTagFilterAndCategories(t *testing.T) {
	repo := NewBlogRepository(setupTestDB(t))
	ctx := context.Background()
	at := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

	storedPost(t, repo, "backup-basics", "security", []string{"backup", "smb"}, true, at)
	storedPost(t, repo, "wifi-tips", "networking", []string{"wifi"}, true, at.Add(time.Hour))
	storedPost(t, repo, "draft-post", "security", []string{"backup"}, false, at)

	published := blog.StatusPublished
	posts, total, err := repo.List(ctx, blog.Filter{Status: &published, Tag: "Backup"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, "backup-basics", posts[0].Slug())

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []blog.CategoryCount{{Category: "networking", Count: 1}, {Category: "security", Count: 1}}, categories)
}

func TestBlogRepositoryViewsAndSlug(t *testing.T) {
	repo := NewBlogRepository(setupTestDB(t))
	ctx := context.Background()
	p := storedPost(t, repo, "cloud-moves", "cloud", nil, true, time.Now().UTC())

	require.NoError(t, repo.IncrementViews(ctx, p.ID()))
	require.NoError(t, repo.IncrementViews(ctx, p.ID()))

	loaded, err := repo.GetBySlug(ctx, "cloud-moves")
	require.NoError(t, err)
	assert.Equal(t, int64(2), loaded.State().Views)
	assert.Empty(t, loaded.State().Tags)

	exists, err := repo.ExistsBySlug(ctx, "cloud-moves")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.GetBySlug(ctx, "missing")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestConsultationRepositoryActiveBetween(t *testing.T) {
	repo := NewConsultationRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 6, 0, 0, 0, time.UTC)
	day := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)

	book := func(start time.Time, d time.Duration) *consultation.Consultation {
		c, err := consultation.NewConsultation(consultation.NewParams{
			Name: "Otieno", Email: "otieno@example.com", ServiceType: "network audit",
			ScheduledAt: start, Duration: d,
		}, now)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, c))
		return c
	}

	long := book(day.Add(7*time.Hour), 3*time.Hour)
	book(day.Add(13*time.Hour), time.Hour)
	cancelled := book(day.Add(10*time.Hour), time.Hour)
	require.NoError(t, cancelled.UpdateStatus(consultation.StatusCancelled, "", now))
	require.NoError(t, repo.Update(ctx, cancelled))

	got, err := repo.ListActiveBetween(ctx, day.Add(9*time.Hour), day.Add(11*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, long.ID(), got[0].ID())
}

func TestGovernmentRepositories(t *testing.T) {
	gdb := setupTestDB(t)
	services := NewGovernmentServiceRepository(gdb)
	requests := NewGovernmentRequestRepository(gdb)
	ctx := context.Background()

	for _, s := range government.DefaultCatalogue() {
		require.NoError(t, s.Validate())
		require.NoError(t, services.Upsert(ctx, s))
	}

	svc, err := services.GetByCode(ctx, "KRA-PIN")
	require.NoError(t, err)
	svc.Fee = 750
	svc.Active = false
	require.NoError(t, services.Upsert(ctx, svc))

	active, err := services.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, len(government.DefaultCatalogue())-1)

	all, err := services.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, len(government.DefaultCatalogue()))

	helb, err := services.GetByCode(ctx, "helb")
	require.NoError(t, err)
	req, err := government.NewRequest(helb, government.NewRequestParams{
		FullName: "Achieng Odhiambo", Email: "achieng@example.com", Phone: "+254700000000",
	}, time.Now())
	require.NoError(t, err)
	require.NoError(t, req.SetReference("GSR25050001"))
	require.NoError(t, requests.Create(ctx, req))

	exists, err := requests.ExistsByReference(ctx, "GSR25050001")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, req.UpdateStatus(government.RequestProcessing, "documents received", time.Now()))
	require.NoError(t, requests.Update(ctx, req))

	loaded, err := requests.GetByReference(ctx, "gsr25050001")
	require.NoError(t, err)
	assert.Equal(t, government.RequestProcessing, loaded.Status())

	count, err := requests.CountByStatus(ctx, government.RequestProcessing)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestWorkingHoursRepository(t *testing.T) {
	repo := NewWorkingHoursRepository(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.True(t, apperrors.IsNotFoundError(err))

	require.NoError(t, repo.SaveDays(ctx, workinghours.DefaultSchedule().Days))

	days := workinghours.DefaultSchedule().Days
	for i := range days {
		if days[i].Weekday == time.Saturday {
			days[i].Closed = true
			days[i].Open, days[i].Close = "", ""
		}
	}
	require.NoError(t, repo.SaveDays(ctx, days))

	h, err := workinghours.NewHoliday("2025-12-25", "Christmas Day")
	require.NoError(t, err)
	require.NoError(t, repo.AddHoliday(ctx, h))

	s, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Len(t, s.Days, 7)
	assert.Equal(t, time.Sunday, s.Days[0].Weekday)
	assert.True(t, s.Days[time.Saturday].Closed)
	assert.Equal(t, []workinghours.Holiday{{Date: "2025-12-25", Name: "Christmas Day"}}, s.Holidays)

	require.NoError(t, repo.DeleteHoliday(ctx, "2025-12-25"))
	assert.True(t, apperrors.IsNotFoundError(repo.DeleteHoliday(ctx, "2025-12-25")))
}

func TestNewsletterRepository(t *testing.T) {
	repo := NewNewsletterRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Now()

	sub, err := newsletter.NewSubscriber("reader@example.com", "Reader", now)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, sub))

	dup, err := newsletter.NewSubscriber("reader@example.com", "Again", now)
	require.NoError(t, err)
	assert.True(t, apperrors.IsConflictError(repo.Create(ctx, dup)))

	byToken, err := repo.GetByToken(ctx, sub.Token())
	require.NoError(t, err)
	assert.Equal(t, sub.ID(), byToken.ID())

	byToken.Unsubscribe(now)
	require.NoError(t, repo.Update(ctx, byToken))

	count, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	inactive := false
	list, total, err := repo.List(ctx, newsletter.Filter{Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.False(t, list[0].IsActive())
}
