package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remotcyberhelp/internal/domain/ticket"
	vo "remotcyberhelp/internal/domain/ticket/valueobjects"
	apperrors "remotcyberhelp/internal/shared/errors"
)

func newStoredTicket(t *testing.T, repo *TicketRepository, number string, p ticket.NewTicketParams, createdAt time.Time) *ticket.Ticket {
	t.Helper()
	if p.Description == "" {
		p.Description = "Laptop will not boot after update"
	}
	if p.Category == "" {
		p.Category = vo.CategoryTechnicalIssue
	}
	tk, err := ticket.NewTicket(p, createdAt)
	require.NoError(t, err)
	require.NoError(t, tk.SetNumber(number))
	require.NoError(t, repo.Create(context.Background(), tk))
	return tk
}

func TestTicketRepositoryCreateAndLoadWithResponses(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	tk := newStoredTicket(t, repo, "RCH25010001", ticket.NewTicketParams{
		CustomerName: "Jane Wanjiru",
		Email:        "Jane@Example.com",
		Metadata:     map[string]interface{}{"source": "web"},
	}, now)

	first, err := ticket.NewResponse(tk.ID(), "Please restart in safe mode", true, "admin-1", []ticket.Attachment{{Name: "guide.pdf", URL: "/files/guide.pdf", MimeType: "application/pdf", Size: 2048}}, now.Add(time.Hour))
	require.NoError(t, err)
	second, err := ticket.NewResponse(tk.ID(), "Done, still failing", false, "", nil, now.Add(2*time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.AddResponse(ctx, second))
	require.NoError(t, repo.AddResponse(ctx, first))

	loaded, err := repo.GetByNumber(ctx, "rch25010001")
	require.NoError(t, err)
	assert.Equal(t, tk.ID(), loaded.ID())
	assert.Equal(t, "jane@example.com", loaded.Email())
	assert.Equal(t, "web", loaded.Metadata()["source"])

	responses := loaded.Responses()
	require.Len(t, responses, 2)
	assert.Equal(t, first.ID(), responses[0].ID())
	require.Len(t, responses[0].Attachments(), 1)
	assert.Equal(t, "guide.pdf", responses[0].Attachments()[0].Name)

	count, err := repo.CountResponses(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestTicketRepositoryDuplicateNumberIsConflict(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	now := time.Now()
	newStoredTicket(t, repo, "RCH25010001", ticket.NewTicketParams{}, now)

	dup, err := ticket.NewTicket(ticket.NewTicketParams{Description: "again", Category: vo.CategoryOther}, now)
	require.NoError(t, err)
	require.NoError(t, dup.SetNumber("RCH25010001"))

	err = repo.Create(context.Background(), dup)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))
}

func TestTicketRepositoryDeleteRemovesResponses(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()
	tk := newStoredTicket(t, repo, "RCH25010002", ticket.NewTicketParams{}, time.Now())

	resp, err := ticket.NewResponse(tk.ID(), "hello", false, "", nil, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.AddResponse(ctx, resp))

	require.NoError(t, repo.Delete(ctx, tk.ID()))

	count, err := repo.CountResponses(ctx, tk.ID())
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = repo.GetByID(ctx, tk.ID())
	assert.True(t, apperrors.IsNotFoundError(err))

	err = repo.Delete(ctx, tk.ID())
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestTicketRepositoryUpdatePersistsClearedFields(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Now()
	tk := newStoredTicket(t, repo, "RCH25010003", ticket.NewTicketParams{}, now)

	require.NoError(t, tk.ChangeStatus(vo.StatusInProgress, ticket.TransitionPermissive, now))
	tk.SetAdminNotes("checking drivers")
	require.NoError(t, repo.Update(ctx, tk))

	tk.SetAdminNotes("")
	require.NoError(t, repo.Update(ctx, tk))

	loaded, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusInProgress, loaded.Status())
	assert.Empty(t, loaded.AdminNotes())
	assert.NotNil(t, loaded.InProgressAt())
}

func TestTicketRepositoryInterleavedUpdatesKeepBothChanges(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC)
	tk := newStoredTicket(t, repo, "RCH25050001", ticket.NewTicketParams{}, now)

	t.Run("reply after status change does not revert status", func(t *testing.T) {
		admin, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)
		customer, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)

		require.NoError(t, admin.ChangeStatus(vo.StatusResolved, ticket.TransitionPermissive, now.Add(time.Hour)))
		require.NoError(t, repo.Update(ctx, admin))

		customer.RecordResponse(now.Add(2 * time.Hour))
		require.NoError(t, repo.Update(ctx, customer))

		loaded, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Equal(t, vo.StatusResolved, loaded.Status())
		assert.NotNil(t, loaded.ResolvedAt())
		assert.NotNil(t, loaded.LastResponseAt())
	})

	t.Run("escalation and assignment from stale copies both persist", func(t *testing.T) {
		first, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)
		second, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)

		require.NoError(t, first.Escalate("Server down", "admin-1", now.Add(3*time.Hour)))
		require.NoError(t, repo.Update(ctx, first))

		second.SetAdminNotes("called customer")
		require.NoError(t, repo.Update(ctx, second))

		loaded, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.True(t, loaded.Escalated())
		assert.Equal(t, vo.PriorityCritical, loaded.Priority())
		assert.Equal(t, "called customer", loaded.AdminNotes())
		assert.Equal(t, vo.StatusResolved, loaded.Status())
	})

	t.Run("no pending changes is a no-op", func(t *testing.T) {
		unchanged, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.NoError(t, repo.Update(ctx, unchanged))
	})
}

func TestTicketRepositoryListFilters(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)

	newStoredTicket(t, repo, "RCH25020001", ticket.NewTicketParams{Email: "amina@example.com", Subject: "Printer offline", Category: vo.CategoryPrinterSetup}, base)
	newStoredTicket(t, repo, "RCH25020002", ticket.NewTicketParams{UserID: "user-7", Subject: "VPN drops", Category: vo.CategoryNetworkConnectivity, Priority: vo.PriorityHigh}, base.Add(time.Hour))
	newStoredTicket(t, repo, "RCH25020003", ticket.NewTicketParams{Email: "other@example.com", Subject: "Email bounce", Category: vo.CategoryEmailSetup}, base.Add(2*time.Hour))

	tests := []struct {
		name   string
		filter ticket.Filter
		want   []string
	}{
		{
			name:   "owner by email",
			filter: ticket.Filter{OwnerEmail: "AMINA@example.com", OwnerID: "someone-else"},
			want:   []string{"RCH25020001"},
		},
		{
			name:   "owner by id",
			filter: ticket.Filter{OwnerID: "user-7"},
			want:   []string{"RCH25020002"},
		},
		{
			name:   "priority",
			filter: ticket.Filter{Priority: ptr(vo.PriorityHigh)},
			want:   []string{"RCH25020002"},
		},
		{
			name:   "search",
			filter: ticket.Filter{Search: "email"},
			want:   []string{"RCH25020003"},
		},
		{
			name:   "default order newest first",
			filter: ticket.Filter{},
			want:   []string{"RCH25020003", "RCH25020002", "RCH25020001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)
			numbers := make([]string, len(got))
			for i, tk := range got {
				numbers[i] = tk.Number()
			}
			assert.Equal(t, tt.want, numbers)
		})
	}
}

func TestTicketRepositoryAttentionCandidates(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	old := now.Add(-48 * time.Hour)

	newStoredTicket(t, repo, "RCH25030001", ticket.NewTicketParams{Priority: vo.PriorityCritical}, now.Add(-time.Hour))
	newStoredTicket(t, repo, "RCH25030002", ticket.NewTicketParams{Priority: vo.PriorityLow}, old)
	recentOpen := newStoredTicket(t, repo, "RCH25030003", ticket.NewTicketParams{Priority: vo.PriorityLow}, now.Add(-time.Hour))
	resolved := newStoredTicket(t, repo, "RCH25030004", ticket.NewTicketParams{Priority: vo.PriorityCritical}, old)
	require.NoError(t, resolved.ChangeStatus(vo.StatusResolved, ticket.TransitionPermissive, now))
	require.NoError(t, repo.Update(ctx, resolved))

	got, err := repo.ListAttentionCandidates(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)

	numbers := make([]string, len(got))
	for i, tk := range got {
		numbers[i] = tk.Number()
	}
	assert.Equal(t, []string{"RCH25030002", "RCH25030001"}, numbers)
	assert.NotContains(t, numbers, recentOpen.Number())
}

func TestTicketRepositoryRewriteCategory(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()
	tk := newStoredTicket(t, repo, "RCH25040001", ticket.NewTicketParams{}, time.Now())
	require.NoError(t, gdb.Exec("UPDATE support_tickets SET category = ? WHERE id = ?", "Tech Support", tk.ID()).Error)

	categories, err := repo.DistinctCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tech Support"}, categories)

	n, err := repo.RewriteCategory(ctx, "Tech Support", vo.CategoryTechnicalIssue)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCounterStoreIssuesSequentialValues(t *testing.T) {
	store := NewCounterStore(setupTestDB(t))
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := store.Next(ctx, "ticket:2501")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	other, err := store.Next(ctx, "ticket:2502")
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)

	current, err := store.Current(ctx, "ticket:2501")
	require.NoError(t, err)
	assert.Equal(t, int64(3), current)

	unused, err := store.Current(ctx, "ticket:2412")
	require.NoError(t, err)
	assert.Zero(t, unused)
}

func TestCounterStoreConcurrentCallsNeverRepeat(t *testing.T) {
	store := NewCounterStore(setupTestDB(t))
	ctx := context.Background()

	const workers = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int64]bool)
		errs []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := store.Next(ctx, "ticket:2505")
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			seen[seq] = true
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Len(t, seen, workers)
	for i := int64(1); i <= workers; i++ {
		assert.True(t, seen[i], fmt.Sprintf("sequence %d missing", i))
	}
}

func TestAllocatorOverCounterStore(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	clock := func() time.Time { return time.Date(2025, 7, 4, 10, 0, 0, 0, time.UTC) }
	alloc := ticket.NewNumberAllocator(NewCounterStore(gdb), repo, ticket.WithClock(clock))

	first, err := alloc.Allocate(context.Background())
	require.NoError(t, err)
	second, err := alloc.Allocate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "RCH25070001", first)
	assert.Equal(t, "RCH25070002", second)
}

func ptr[T any](v T) *T { return &v }
