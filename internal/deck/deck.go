// Package deck holds the swipe screen's client-side state machine: three
// slot buffers (top/bottom/shoes) that keep a displayed candidate plus one
// prefetched successor each, and the optimistic dispatcher that advances
// them ahead of the network.
package deck

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"styleswipe/internal/catalog"
	"styleswipe/internal/model"
)

// Fetcher is the candidate source (api.Client satisfies it).
type Fetcher interface {
	FetchCandidate(ctx context.Context, categoryIDs []int, minPrice, maxPrice string) (model.Candidate, error)
}

// slot is one apparel slot's buffer pair. current is never mutated in
// place; every refresh replaces the pointer.
type slot struct {
	current    *model.Candidate
	prefetched *model.Candidate
	loading    bool
	lastErr    error
}

// SlotView is the UI-facing snapshot of one slot.
type SlotView struct {
	Kind    model.SlotKind
	Current *model.Candidate // nil while loading or after a failed fetch
	Loading bool
	Err     error // last fetch failure; cleared by the next success
}

// Deck owns the three slot buffers under one mutex. A generation counter
// implements last-filter-wins: every fetch snapshots the generation it was
// issued under, and its result is dropped if a filter change has superseded
// it by the time it resolves.
type Deck struct {
	fetch Fetcher
	log   *zap.Logger

	mu     sync.Mutex
	gen    uint64
	filter model.FilterCriteria
	ids    map[model.SlotKind][]int
	slots  map[model.SlotKind]*slot

	// onChange, when set, is called (without the lock) after any state
	// change a UI would want to repaint for.
	onChange func()

	prefetches sync.WaitGroup
}

func New(fetch Fetcher, filter model.FilterCriteria, log *zap.Logger) *Deck {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Deck{
		fetch: fetch,
		log:   log,
		slots: map[model.SlotKind]*slot{},
	}
	for _, k := range model.AllSlotKinds {
		d.slots[k] = &slot{}
	}
	d.setFilterLocked(filter)
	return d
}

// SetOnChange registers a repaint hook. Must be called before Initialize.
func (d *Deck) SetOnChange(fn func()) { d.onChange = fn }

func (d *Deck) notify() {
	if d.onChange != nil {
		d.onChange()
	}
}

// setFilterLocked recomputes category ids and resets every slot to its
// loading state. Caller holds no lock during New; otherwise d.mu.
func (d *Deck) setFilterLocked(f model.FilterCriteria) {
	d.gen++
	d.filter = f
	d.ids = map[model.SlotKind][]int{}
	for _, k := range model.AllSlotKinds {
		kind := model.ApparelKindForSlot(k)
		d.ids[k] = catalog.MapCategories(f.Labels(kind), kind, f.IsNew)
		d.slots[k] = &slot{loading: true}
	}
}

// Filter returns the active criteria.
func (d *Deck) Filter() model.FilterCriteria {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.filter
}

// Initialize fetches the current candidate for all three slots
// concurrently (no ordering between slots), then starts each slot's
// background prefetch strictly after its own current resolves. Individual
// fetch failures land on the slot (retry-capable empty state) and never
// cancel the sibling fetches; the first one is also returned for callers
// that want to report it.
func (d *Deck) Initialize(ctx context.Context) error {
	d.mu.Lock()
	gen := d.gen
	d.mu.Unlock()

	var g errgroup.Group
	for _, k := range model.AllSlotKinds {
		g.Go(func() error {
			return d.fillCurrent(ctx, k, gen)
		})
	}
	return g.Wait()
}

// fillCurrent blocking-fetches a slot's current candidate and, on success,
// kicks off the background prefetch of its successor.
func (d *Deck) fillCurrent(ctx context.Context, kind model.SlotKind, gen uint64) error {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return nil
	}
	ids := d.ids[kind]
	minP, maxP := d.filter.MinPrice, d.filter.MaxPrice
	d.slots[kind].loading = true
	d.mu.Unlock()
	d.notify()

	cand, err := d.fetch.FetchCandidate(ctx, ids, minP, maxP)

	d.mu.Lock()
	if gen != d.gen {
		// A newer filter superseded this fetch; drop the result.
		d.mu.Unlock()
		return nil
	}
	s := d.slots[kind]
	s.loading = false
	if err != nil {
		s.current = nil
		s.lastErr = err
		d.mu.Unlock()
		d.notify()
		d.log.Warn("slot fetch failed", zap.String("slot", string(kind)), zap.Error(err))
		return err
	}
	s.current = &cand
	s.lastErr = nil
	d.mu.Unlock()
	d.notify()

	d.startPrefetch(kind, gen)
	return nil
}

// startPrefetch fetches the slot's next candidate in the background. It
// never blocks the UI and its result is discarded when stale.
func (d *Deck) startPrefetch(kind model.SlotKind, gen uint64) {
	d.mu.Lock()
	ids := d.ids[kind]
	minP, maxP := d.filter.MinPrice, d.filter.MaxPrice
	d.mu.Unlock()

	d.prefetches.Add(1)
	go func() {
		defer d.prefetches.Done()
		cand, err := d.fetch.FetchCandidate(context.Background(), ids, minP, maxP)
		if err != nil {
			// Not surfaced: the advance path falls back to a blocking
			// fetch when no prefetched candidate is available.
			d.log.Debug("prefetch failed", zap.String("slot", string(kind)), zap.Error(err))
			return
		}
		d.mu.Lock()
		if gen == d.gen && d.slots[kind].prefetched == nil && d.slots[kind].current != nil {
			d.slots[kind].prefetched = &cand
		}
		d.mu.Unlock()
	}()
}

// Advance moves a slot to its next candidate. With a prefetched candidate
// in hand the swap is synchronous (no loading flash) and a new prefetch is
// kicked off; without one (the user outran the prefetch) it degrades to a
// blocking fetch with a visible loading state.
func (d *Deck) Advance(ctx context.Context, kind model.SlotKind) error {
	d.mu.Lock()
	gen := d.gen
	s := d.slots[kind]
	if s.prefetched != nil {
		s.current = s.prefetched
		s.prefetched = nil
		s.lastErr = nil
		d.mu.Unlock()
		d.notify()
		d.startPrefetch(kind, gen)
		return nil
	}
	s.current = nil
	s.loading = true
	d.mu.Unlock()
	d.notify()

	return d.fillCurrent(ctx, kind, gen)
}

// Retry re-issues a failed slot's fetch. User-initiated only; the deck
// never retries on its own.
func (d *Deck) Retry(ctx context.Context, kind model.SlotKind) error {
	d.mu.Lock()
	gen := d.gen
	d.mu.Unlock()
	return d.fillCurrent(ctx, kind, gen)
}

// SetFilter applies new criteria. A no-op when the criteria are equal;
// otherwise both buffers of every slot are discarded and refetched, and any
// in-flight fetch from the previous filter resolves into the void.
func (d *Deck) SetFilter(ctx context.Context, f model.FilterCriteria) error {
	d.mu.Lock()
	if d.filter.Equal(f) {
		d.mu.Unlock()
		return nil
	}
	d.setFilterLocked(f)
	d.mu.Unlock()
	d.notify()
	return d.Initialize(ctx)
}

// Current returns a slot's displayed candidate, if any.
func (d *Deck) Current(kind model.SlotKind) (model.Candidate, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.slots[kind]
	if s.current == nil {
		return model.Candidate{}, false
	}
	return *s.current, true
}

// Snapshot returns the UI view of all slots in display order.
func (d *Deck) Snapshot() []SlotView {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]SlotView, 0, len(model.AllSlotKinds))
	for _, k := range model.AllSlotKinds {
		s := d.slots[k]
		out = append(out, SlotView{
			Kind:    k,
			Current: s.current,
			Loading: s.loading,
			Err:     s.lastErr,
		})
	}
	return out
}

// WaitPrefetches blocks until in-flight prefetches settle. Test hook.
func (d *Deck) WaitPrefetches() { d.prefetches.Wait() }
