// Package saved builds the "Your Fits" view: the server's liked collection
// minus everything the user dismissed locally.
package saved

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"styleswipe/internal/model"
	"styleswipe/internal/session"
	"styleswipe/internal/store"
)

// LikedSource is the backend side (api.Client satisfies it).
type LikedSource interface {
	LikedItems(ctx context.Context, userID string) (model.LikedCollection, error)
}

// Reconciler rebuilds the saved lists wholesale on every screen focus and
// applies the persisted exclusion sets. Removal is client-side only: the
// server keeps the like, the client hides it permanently.
type Reconciler struct {
	api  LikedSource
	excl *store.Exclusions
	sess model.Session
	log  *zap.Logger

	mu     sync.Mutex
	col    model.LikedCollection
	loaded bool
}

func NewReconciler(api LikedSource, excl *store.Exclusions, sess model.Session, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{api: api, excl: excl, sess: sess, log: log}
}

// Refresh fetches the liked collection and filters out excluded ids.
// Invoked on screen focus, not on every render. Without a session it fails
// with MissingUserError; the screen shows a blocking message and must not
// auto-retry.
func (r *Reconciler) Refresh(ctx context.Context) (model.LikedCollection, error) {
	if r.sess.Empty() {
		return model.LikedCollection{}, session.MissingUserError{}
	}

	removedItems, err := r.excl.Load(ctx, r.sess.UserID, store.KindItems)
	if err != nil {
		return model.LikedCollection{}, err
	}
	removedOutfits, err := r.excl.Load(ctx, r.sess.UserID, store.KindOutfits)
	if err != nil {
		return model.LikedCollection{}, err
	}

	col, err := r.api.LikedItems(ctx, r.sess.UserID)
	if err != nil {
		return model.LikedCollection{}, err
	}

	itemSet := store.Contains(removedItems)
	outfitSet := store.Contains(removedOutfits)

	filtered := model.LikedCollection{
		Items:   make([]model.LikedItem, 0, len(col.Items)),
		Outfits: make([]model.LikedOutfit, 0, len(col.Outfits)),
	}
	for _, it := range col.Items {
		if !itemSet[it.ItemID] {
			filtered.Items = append(filtered.Items, it)
		}
	}
	for _, o := range col.Outfits {
		if !outfitSet[o.OutfitID] {
			filtered.Outfits = append(filtered.Outfits, o)
		}
	}

	r.mu.Lock()
	r.col = filtered
	r.loaded = true
	r.mu.Unlock()
	return filtered, nil
}

// Collection returns the last reconciled lists, if any refresh succeeded.
func (r *Reconciler) Collection() (model.LikedCollection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.col, r.loaded
}

// Remove hides an entry: it disappears from the in-memory lists immediately
// and the id is appended to the persisted exclusion set so the next refresh
// keeps it hidden. There is no server-side delete in this flow.
func (r *Reconciler) Remove(ctx context.Context, id string, kind store.EntityKind) error {
	r.mu.Lock()
	switch kind {
	case store.KindItems:
		kept := r.col.Items[:0]
		for _, it := range r.col.Items {
			if it.ItemID != id {
				kept = append(kept, it)
			}
		}
		r.col.Items = kept
	case store.KindOutfits:
		kept := r.col.Outfits[:0]
		for _, o := range r.col.Outfits {
			if o.OutfitID != id {
				kept = append(kept, o)
			}
		}
		r.col.Outfits = kept
	}
	r.mu.Unlock()

	if err := r.excl.Add(ctx, r.sess.UserID, kind, id); err != nil {
		r.log.Warn("persisting removal failed",
			zap.String("kind", string(kind)),
			zap.String("id", id),
			zap.Error(err))
		return err
	}
	return nil
}
