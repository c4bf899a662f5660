package deck

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"styleswipe/internal/model"
)

type recordingMutator struct {
	mu      sync.Mutex
	likes   []model.Candidate
	fits    [][3]model.Candidate
	failAll bool
}

func (m *recordingMutator) LikeItem(ctx context.Context, userID string, kind model.SlotKind, cand model.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return errors.New("backend down")
	}
	m.likes = append(m.likes, cand)
	return nil
}

func (m *recordingMutator) CreateFit(ctx context.Context, userID string, top, bottom, shoes model.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return errors.New("backend down")
	}
	m.fits = append(m.fits, [3]model.Candidate{top, bottom, shoes})
	return nil
}

func (m *recordingMutator) counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.likes), len(m.fits)
}

type noticeLog struct {
	mu      sync.Mutex
	notices []Notice
}

func (l *noticeLog) record(n Notice) {
	l.mu.Lock()
	l.notices = append(l.notices, n)
	l.mu.Unlock()
}

func (l *noticeLog) all() []Notice {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Notice(nil), l.notices...)
}

func readyDeck(t *testing.T) (*Deck, *scriptedFetcher) {
	t.Helper()
	f := sequential()
	d := New(f, model.FilterCriteria{}, nil)
	if err := d.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	d.WaitPrefetches()
	return d, f
}

func TestLike_AdvancesFirstThenSends(t *testing.T) {
	t.Parallel()

	d, _ := readyDeck(t)
	mut := &recordingMutator{}
	var log noticeLog
	disp := NewDispatcher(d, mut, model.Session{UserID: "user-1"}, nil, log.record)

	liked, _ := d.Current(model.SlotTop)
	disp.Like(context.Background(), model.SlotTop)

	// The confirmation is synchronous and the slot already shows the next
	// candidate, before the network call settles.
	after, _ := d.Current(model.SlotTop)
	if after.ProductID == liked.ProductID {
		t.Fatal("slot did not advance optimistically")
	}
	notices := log.all()
	if len(notices) == 0 || notices[0].Kind != NoticeLiked {
		t.Fatalf("want immediate liked notice, got %+v", notices)
	}

	disp.Wait()
	mut.mu.Lock()
	defer mut.mu.Unlock()
	if len(mut.likes) != 1 || mut.likes[0].ProductID != liked.ProductID {
		t.Fatalf("mutation must carry the pre-advance candidate, got %+v", mut.likes)
	}
}

func TestLike_FailureNoticeWithoutRollback(t *testing.T) {
	t.Parallel()

	d, _ := readyDeck(t)
	mut := &recordingMutator{failAll: true}
	var log noticeLog
	disp := NewDispatcher(d, mut, model.Session{UserID: "user-1"}, nil, log.record)

	disp.Like(context.Background(), model.SlotTop)
	shown, _ := d.Current(model.SlotTop)
	disp.Wait()

	// The advanced state is final; the failure only adds a notice.
	still, _ := d.Current(model.SlotTop)
	if still.ProductID != shown.ProductID {
		t.Fatal("failed like must not roll the slot back")
	}

	notices := log.all()
	if len(notices) != 2 || notices[0].Kind != NoticeLiked || notices[1].Kind != NoticeFailed {
		t.Fatalf("want liked then failed, got %+v", notices)
	}
}

func TestLike_EmptySlotIsNotReady(t *testing.T) {
	t.Parallel()

	f := &scriptedFetcher{}
	f.fn = func(call int, ids []int, minPrice string) (model.Candidate, error) {
		return model.Candidate{}, errors.New("backend down")
	}
	d := New(f, model.FilterCriteria{}, nil)
	_ = d.Initialize(context.Background())

	mut := &recordingMutator{}
	var log noticeLog
	disp := NewDispatcher(d, mut, model.Session{UserID: "user-1"}, nil, log.record)

	calls := f.callCount()
	disp.Like(context.Background(), model.SlotTop)
	disp.Wait()

	notices := log.all()
	if len(notices) != 1 || notices[0].Kind != NoticeNotReady {
		t.Fatalf("want a single not-ready notice, got %+v", notices)
	}
	if likes, fits := mut.counts(); likes != 0 || fits != 0 {
		t.Fatal("not-ready like must not reach the backend")
	}
	if f.callCount() != calls {
		t.Fatal("not-ready like must not advance the slot")
	}
}

func TestCreateOutfit_AllThreeRequired(t *testing.T) {
	t.Parallel()

	// Shoes never load (footwear has 12 unfiltered ids, the other kinds
	// fewer), so the outfit is incomplete.
	f := &scriptedFetcher{}
	f.fn = func(call int, ids []int, minPrice string) (model.Candidate, error) {
		if len(ids) == 12 {
			return model.Candidate{}, errors.New("backend down")
		}
		return model.Candidate{ProductID: fmt.Sprintf("p%d", call)}, nil
	}
	d := New(f, model.FilterCriteria{}, nil)
	_ = d.Initialize(context.Background())
	d.WaitPrefetches()

	topBefore, _ := d.Current(model.SlotTop)

	mut := &recordingMutator{}
	var log noticeLog
	disp := NewDispatcher(d, mut, model.Session{UserID: "user-1"}, nil, log.record)
	disp.CreateOutfit(context.Background())
	disp.Wait()

	if likes, fits := mut.counts(); likes != 0 || fits != 0 {
		t.Fatal("incomplete outfit must make zero backend calls")
	}
	notices := log.all()
	if len(notices) != 1 || notices[0].Kind != NoticeNotReady {
		t.Fatalf("want not-ready, got %+v", notices)
	}
	// No partial advance either.
	topAfter, _ := d.Current(model.SlotTop)
	if topAfter.ProductID != topBefore.ProductID {
		t.Fatal("incomplete outfit must not advance any slot")
	}
}

func TestCreateOutfit_SendsDisplayedTrio(t *testing.T) {
	t.Parallel()

	d, _ := readyDeck(t)
	top, _ := d.Current(model.SlotTop)
	bottom, _ := d.Current(model.SlotBottom)
	shoes, _ := d.Current(model.SlotShoes)

	mut := &recordingMutator{}
	var log noticeLog
	disp := NewDispatcher(d, mut, model.Session{UserID: "user-1"}, nil, log.record)
	disp.CreateOutfit(context.Background())

	// All three slots advanced before the network settles.
	for _, k := range model.AllSlotKinds {
		cand, ok := d.Current(k)
		if !ok {
			continue // degraded to a blocking fetch; still fine
		}
		if cand.ProductID == top.ProductID && k == model.SlotTop {
			t.Fatal("top slot did not advance")
		}
	}
	notices := log.all()
	if len(notices) == 0 || notices[0].Kind != NoticeOutfitCreated {
		t.Fatalf("want immediate outfit notice, got %+v", notices)
	}

	disp.Wait()
	mut.mu.Lock()
	defer mut.mu.Unlock()
	if len(mut.fits) != 1 {
		t.Fatalf("want one create-fit call, got %d", len(mut.fits))
	}
	got := mut.fits[0]
	if got[0].ProductID != top.ProductID || got[1].ProductID != bottom.ProductID || got[2].ProductID != shoes.ProductID {
		t.Fatalf("create-fit must carry the displayed trio, got %+v", got)
	}
}
