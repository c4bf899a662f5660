// Package trending is the client side of the trending feed. Aggregation is
// server-side; the client only renders the list and fires optimistic likes.
package trending

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"styleswipe/internal/model"
)

// Source is the backend side (api.Client satisfies it).
type Source interface {
	Trending(ctx context.Context) ([]model.TrendingItem, error)
	LikeTrending(ctx context.Context, userID, itemID string, count int) error
}

type Feed struct {
	api  Source
	sess model.Session
	log  *zap.Logger

	mu    sync.Mutex
	items []model.TrendingItem

	mutations sync.WaitGroup
}

func NewFeed(api Source, sess model.Session, log *zap.Logger) *Feed {
	if log == nil {
		log = zap.NewNop()
	}
	return &Feed{api: api, sess: sess, log: log}
}

// Refresh fetches the feed wholesale.
func (f *Feed) Refresh(ctx context.Context) ([]model.TrendingItem, error) {
	items, err := f.api.Trending(ctx)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.items = items
	f.mu.Unlock()
	return items, nil
}

// Items returns the last fetched feed.
func (f *Feed) Items() []model.TrendingItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.TrendingItem(nil), f.items...)
}

// Like bumps the local count immediately and reports the like in the
// background; a failure is logged, never rolled back. Same optimistic
// contract as the swipe screen.
func (f *Feed) Like(itemID string) {
	var count int
	found := false
	f.mu.Lock()
	for i := range f.items {
		if f.items[i].ProductID == itemID {
			f.items[i].Count++
			count = f.items[i].Count
			found = true
			break
		}
	}
	f.mu.Unlock()

	if !found {
		// Stale selection against a refreshed feed; there is no count
		// worth reporting.
		f.log.Warn("like for unknown trending item", zap.String("itemId", itemID))
		return
	}

	f.mutations.Add(1)
	go func() {
		defer f.mutations.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := f.api.LikeTrending(ctx, f.sess.UserID, itemID, count); err != nil {
			f.log.Warn("like-trending failed", zap.String("itemId", itemID), zap.Error(err))
		}
	}()
}

// Wait blocks until background likes settle. Test hook.
func (f *Feed) Wait() { f.mutations.Wait() }
