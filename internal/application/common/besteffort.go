// Package common holds helpers shared by the application use cases.
package common

import (
	"context"
	"time"

	"remotcyberhelp/internal/shared/goroutine"
	"remotcyberhelp/internal/shared/logger"
	"remotcyberhelp/internal/shared/query"
)

// notifyTimeout bounds a detached notification so a hung mail server
// cannot pin goroutines.
const notifyTimeout = 30 * time.Second

// BestEffort runs side effects that must never fail the request that
// triggered them, such as notification emails. Failures are only logged.
type BestEffort struct {
	logger logger.Interface
	async  func(name string, fn func())
}

func NewBestEffort(log logger.Interface) *BestEffort {
	return &BestEffort{
		logger: log,
		async: func(name string, fn func()) {
			goroutine.SafeGo(log, name, fn)
		},
	}
}

// Synchronous makes Go run inline.
func (b *BestEffort) Synchronous() *BestEffort {
	b.async = func(_ string, fn func()) { fn() }
	return b
}

// Go runs fn detached from the request context.
func (b *BestEffort) Go(kind string, fn func(ctx context.Context) error) {
	if b == nil {
		return
	}
	b.async("notify-"+kind, func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			b.logger.Warnw("best-effort notification failed", "kind", kind, "error", err)
		}
	})
}

// Page is a generic paginated listing.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}

func NewPage[T any](items []T, total int64, f query.PageFilter) *Page[T] {
	return &Page[T]{Items: items, Total: total, Page: max(f.Page, 1), Limit: f.Limit()}
}
