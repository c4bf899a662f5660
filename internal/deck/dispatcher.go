package deck

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"styleswipe/internal/model"
)

// Mutator is the backend side of like / create-outfit (api.Client
// satisfies it).
type Mutator interface {
	LikeItem(ctx context.Context, userID string, kind model.SlotKind, cand model.Candidate) error
	CreateFit(ctx context.Context, userID string, top, bottom, shoes model.Candidate) error
}

// NoticeKind classifies transient banners the dispatcher emits.
type NoticeKind int

const (
	NoticeLiked NoticeKind = iota
	NoticeOutfitCreated
	NoticeNotReady
	NoticeFailed
)

type Notice struct {
	Kind NoticeKind
	Text string
}

// mutationTimeout bounds background like/create-fit calls; the UI never
// waits on them, but the goroutine should not linger forever either.
const mutationTimeout = 30 * time.Second

// Dispatcher performs the optimistic update flow: advance the local buffer
// and emit a confirmation first, then fire the mutation in the background.
// Mutation failures are logged and may surface as a follow-up failure
// notice, but the already-advanced local state is final either way. A
// failed like therefore shows as liked until the next reconciliation; that
// asymmetry is deliberate.
type Dispatcher struct {
	deck    *Deck
	api     Mutator
	session model.Session
	log     *zap.Logger

	// onNotice receives the immediate confirmation synchronously and any
	// failure notice from the mutation goroutine. May be nil.
	onNotice func(Notice)

	mutations sync.WaitGroup
}

func NewDispatcher(d *Deck, api Mutator, sess model.Session, log *zap.Logger, onNotice func(Notice)) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{deck: d, api: api, session: sess, log: log, onNotice: onNotice}
}

func (p *Dispatcher) notify(n Notice) {
	if p.onNotice != nil {
		p.onNotice(n)
	}
}

// Like likes the slot's displayed candidate: advance, confirm, then send.
func (p *Dispatcher) Like(ctx context.Context, kind model.SlotKind) {
	cand, ok := p.deck.Current(kind)
	if !ok {
		p.notify(Notice{Kind: NoticeNotReady, Text: "Nothing to like yet"})
		return
	}

	// Optimistic: swap first, confirm immediately.
	_ = p.deck.Advance(ctx, kind)
	p.notify(Notice{Kind: NoticeLiked, Text: "Liked " + cand.Name})

	p.mutations.Add(1)
	go func() {
		defer p.mutations.Done()
		ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
		defer cancel()
		if err := p.api.LikeItem(ctx, p.session.UserID, kind, cand); err != nil {
			p.log.Warn("like-item failed",
				zap.String("slot", string(kind)),
				zap.String("productId", cand.ProductID),
				zap.Error(err))
			p.notify(Notice{Kind: NoticeFailed, Text: "Couldn't save like"})
		}
	}()
}

// CreateOutfit saves the three displayed candidates as an outfit. All three
// slots must be populated; otherwise nothing advances, nothing is sent, and
// a not-ready notice is shown instead.
func (p *Dispatcher) CreateOutfit(ctx context.Context) {
	top, okTop := p.deck.Current(model.SlotTop)
	bottom, okBottom := p.deck.Current(model.SlotBottom)
	shoes, okShoes := p.deck.Current(model.SlotShoes)
	if !okTop || !okBottom || !okShoes {
		p.notify(Notice{Kind: NoticeNotReady, Text: "Outfit not ready yet"})
		return
	}

	for _, k := range model.AllSlotKinds {
		_ = p.deck.Advance(ctx, k)
	}
	p.notify(Notice{Kind: NoticeOutfitCreated, Text: "Outfit saved"})

	p.mutations.Add(1)
	go func() {
		defer p.mutations.Done()
		ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
		defer cancel()
		if err := p.api.CreateFit(ctx, p.session.UserID, top, bottom, shoes); err != nil {
			p.log.Warn("create-fit failed", zap.Error(err))
			p.notify(Notice{Kind: NoticeFailed, Text: "Couldn't save outfit"})
		}
	}()
}

// Wait blocks until background mutations settle. Test hook.
func (p *Dispatcher) Wait() { p.mutations.Wait() }
