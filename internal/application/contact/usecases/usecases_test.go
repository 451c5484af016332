package usecases

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remotcyberhelp/internal/application/common"
	"remotcyberhelp/internal/domain/contact"
	"remotcyberhelp/internal/infrastructure/email"
	apperrors "remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

type mockContactRepository struct {
	CreateFunc        func(ctx context.Context, m *contact.Message) error
	UpdateFunc        func(ctx context.Context, m *contact.Message) error
	DeleteFunc        func(ctx context.Context, id string) error
	GetByIDFunc       func(ctx context.Context, id string) (*contact.Message, error)
	ListFunc          func(ctx context.Context, filter contact.Filter) ([]*contact.Message, int64, error)
	CountByStatusFunc func(ctx context.Context, status contact.Status) (int64, error)
}

func (m *mockContactRepository) Create(ctx context.Context, msg *contact.Message) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, msg)
	}
	return nil
}

func (m *mockContactRepository) Update(ctx context.Context, msg *contact.Message) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, msg)
	}
	return nil
}

func (m *mockContactRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockContactRepository) GetByID(ctx context.Context, id string) (*contact.Message, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, apperrors.NewNotFoundError("message not found")
}

func (m *mockContactRepository) List(ctx context.Context, filter contact.Filter) ([]*contact.Message, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockContactRepository) CountByStatus(ctx context.Context, status contact.Status) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	return 0, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	kinds []string
	err   error
}

func (n *recordingNotifier) SendContactAlert(_ context.Context, _ email.ContactMail) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kinds = append(n.kinds, "alert")
	return n.err
}

func (n *recordingNotifier) SendContactAutoReply(_ context.Context, _ email.ContactMail) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kinds = append(n.kinds, "auto_reply")
	return n.err
}

func sampleMessage(t *testing.T) *contact.Message {
	t.Helper()
	m, err := contact.NewMessage("Jane", "jane@example.com", "+254700000000", "Website", "web_design", "I need a site", time.Now())
	require.NoError(t, err)
	return m
}

func TestSubmitMessage(t *testing.T) {
	log := logger.NewNopLogger()

	t.Run("stores and notifies", func(t *testing.T) {
		var stored *contact.Message
		repo := &mockContactRepository{CreateFunc: func(_ context.Context, m *contact.Message) error {
			stored = m
			return nil
		}}
		n := &recordingNotifier{}
		uc := NewSubmitMessageUseCase(repo, n, common.NewBestEffort(log).Synchronous(), log)

		got, err := uc.Execute(context.Background(), SubmitMessageCommand{
			Name: "Jane", Email: "Jane@Example.com", Message: "Hello",
		})
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "jane@example.com", got.Email)
		assert.Equal(t, "new", got.Status)
		assert.ElementsMatch(t, []string{"alert", "auto_reply"}, n.kinds)
	})

	t.Run("mail failure does not fail the request", func(t *testing.T) {
		n := &recordingNotifier{err: errors.New("smtp down")}
		uc := NewSubmitMessageUseCase(&mockContactRepository{}, n, common.NewBestEffort(log).Synchronous(), log)

		_, err := uc.Execute(context.Background(), SubmitMessageCommand{Name: "Jane", Email: "jane@example.com", Message: "Hello"})
		assert.NoError(t, err)
		assert.Len(t, n.kinds, 2)
	})

	t.Run("validation", func(t *testing.T) {
		uc := NewSubmitMessageUseCase(&mockContactRepository{}, nil, common.NewBestEffort(log).Synchronous(), log)
		_, err := uc.Execute(context.Background(), SubmitMessageCommand{Name: "Jane", Email: "jane@example.com"})
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("storage error surfaces", func(t *testing.T) {
		repo := &mockContactRepository{CreateFunc: func(context.Context, *contact.Message) error {
			return errors.New("db gone")
		}}
		uc := NewSubmitMessageUseCase(repo, nil, common.NewBestEffort(log).Synchronous(), log)
		_, err := uc.Execute(context.Background(), SubmitMessageCommand{Name: "Jane", Email: "jane@example.com", Message: "Hi"})
		assert.Error(t, err)
	})
}

func TestListMessages(t *testing.T) {
	log := logger.NewNopLogger()
	msg := sampleMessage(t)

	var seen contact.Filter
	repo := &mockContactRepository{ListFunc: func(_ context.Context, f contact.Filter) ([]*contact.Message, int64, error) {
		seen = f
		return []*contact.Message{msg}, 1, nil
	}}
	uc := NewListMessagesUseCase(repo, log)

	page, err := uc.Execute(context.Background(), ListMessagesQuery{Status: "new", Search: "jane", PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 5, page.Limit)
	require.NotNil(t, seen.Status)
	assert.Equal(t, contact.StatusNew, *seen.Status)
	assert.Equal(t, "jane", seen.Search)

	_, err = uc.Execute(context.Background(), ListMessagesQuery{Status: "spam"})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestUpdateMessageStatus(t *testing.T) {
	log := logger.NewNopLogger()
	msg := sampleMessage(t)
	updated := false
	repo := &mockContactRepository{
		GetByIDFunc: func(_ context.Context, id string) (*contact.Message, error) {
			if id == msg.ID() {
				return msg, nil
			}
			return nil, apperrors.NewNotFoundError("message not found")
		},
		UpdateFunc: func(context.Context, *contact.Message) error {
			updated = true
			return nil
		},
	}
	uc := NewUpdateMessageStatusUseCase(repo, log)

	got, err := uc.Execute(context.Background(), msg.ID(), "replied")
	require.NoError(t, err)
	assert.Equal(t, "replied", got.Status)
	assert.True(t, updated)

	_, err = uc.Execute(context.Background(), msg.ID(), "deleted")
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), "missing", "read")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestDeleteMessage(t *testing.T) {
	log := logger.NewNopLogger()
	msg := sampleMessage(t)
	var deleted string
	repo := &mockContactRepository{
		GetByIDFunc: func(context.Context, string) (*contact.Message, error) { return msg, nil },
		DeleteFunc: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}

	require.NoError(t, NewDeleteMessageUseCase(repo, log).Execute(context.Background(), msg.ID()))
	assert.Equal(t, msg.ID(), deleted)

	err := NewDeleteMessageUseCase(&mockContactRepository{}, log).Execute(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFoundError(err))
}
