package model

import (
	"sort"
	"strings"
	"time"
)

// SlotKind identifies one of the three apparel slots on the swipe screen.
type SlotKind string

const (
	SlotTop    SlotKind = "top"
	SlotBottom SlotKind = "bottom"
	SlotShoes  SlotKind = "shoes"
)

// AllSlotKinds is the fixed slot order used by the swipe screen and the
// create-fit payload.
var AllSlotKinds = []SlotKind{SlotTop, SlotBottom, SlotShoes}

func (k SlotKind) Valid() bool {
	switch k {
	case SlotTop, SlotBottom, SlotShoes:
		return true
	}
	return false
}

// ItemType is the wire tag the backend expects for like-item calls.
// It matches the SlotKind string today; keep the conversion explicit so the
// wire format can drift without touching slot logic.
func (k SlotKind) ItemType() string { return string(k) }

// ApparelKind is the filter/category axis. It is distinct from SlotKind:
// the filter UI speaks "footwear" while the slot machinery speaks "shoes".
type ApparelKind string

const (
	ApparelTops     ApparelKind = "tops"
	ApparelBottoms  ApparelKind = "bottoms"
	ApparelFootwear ApparelKind = "footwear"
)

func (k ApparelKind) Valid() bool {
	switch k {
	case ApparelTops, ApparelBottoms, ApparelFootwear:
		return true
	}
	return false
}

// ApparelKindForSlot maps a swipe slot to its filter axis.
func ApparelKindForSlot(k SlotKind) ApparelKind {
	switch k {
	case SlotTop:
		return ApparelTops
	case SlotBottom:
		return ApparelBottoms
	default:
		return ApparelFootwear
	}
}

// Candidate is one recommended product. Immutable once fetched; a refresh
// replaces the reference, it never mutates in place.
type Candidate struct {
	ProductID      string `json:"productId"`
	ImageURL       string `json:"imageUrl"`
	DetailImageURL string `json:"detailImageUrl"`
	Name           string `json:"productName"`
	Designer       string `json:"designerName"`
	// Price is a display string from the backend ("$128.00", "Sale $59").
	// Not guaranteed numeric-parseable; never do arithmetic on it.
	Price      string `json:"productPrice"`
	ProductURL string `json:"productUrl"`
}

func (c Candidate) Empty() bool { return strings.TrimSpace(c.ProductID) == "" }

// FilterCriteria is the active swipe filter. Owned by the screen; the
// category mapper and fetcher only read it. Edits are staged in the filter
// UI and committed wholesale on apply.
type FilterCriteria struct {
	MinPrice string `json:"minPrice,omitempty"` // empty = unbounded
	MaxPrice string `json:"maxPrice,omitempty"` // empty = unbounded

	// Selected sub-category labels per apparel kind; empty selection = all.
	Tops     []string `json:"tops,omitempty"`
	Bottoms  []string `json:"bottoms,omitempty"`
	Footwear []string `json:"footwear,omitempty"`

	IsNew bool `json:"isNew,omitempty"`
}

// Labels returns the selected labels for a kind.
func (f FilterCriteria) Labels(kind ApparelKind) []string {
	switch kind {
	case ApparelTops:
		return f.Tops
	case ApparelBottoms:
		return f.Bottoms
	default:
		return f.Footwear
	}
}

// Equal reports whether two criteria select the same candidates. Used for
// last-filter-wins staleness checks, so it is order-insensitive on the
// label selections.
func (f FilterCriteria) Equal(o FilterCriteria) bool {
	if f.MinPrice != o.MinPrice || f.MaxPrice != o.MaxPrice || f.IsNew != o.IsNew {
		return false
	}
	return sameLabels(f.Tops, o.Tops) &&
		sameLabels(f.Bottoms, o.Bottoms) &&
		sameLabels(f.Footwear, o.Footwear)
}

func sameLabels(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// LikedItem is a saved single item as returned by the liked-items endpoint.
type LikedItem struct {
	ItemID   string `json:"itemId"`
	ItemType string `json:"itemType,omitempty"`
	Candidate
}

// LikedOutfit is a saved three-piece outfit.
type LikedOutfit struct {
	OutfitID string    `json:"outfitId"`
	Top      Candidate `json:"top"`
	Bottom   Candidate `json:"bottom"`
	Shoes    Candidate `json:"shoes"`
}

// LikedCollection is the server's view of everything the user liked,
// rebuilt wholesale on every refresh.
type LikedCollection struct {
	Items   []LikedItem   `json:"likedItems"`
	Outfits []LikedOutfit `json:"likedOutfits"`
}

// TrendingItem is a feed entry with its aggregate like count.
type TrendingItem struct {
	Candidate
	Count int `json:"count"`
}

// Session is the explicit user identity passed to every component that
// talks to the backend. Created at sign-in, read-only thereafter, torn down
// at sign-out. The id is a locally generated opaque string; the backend does
// not verify it.
type Session struct {
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s Session) Empty() bool { return strings.TrimSpace(s.UserID) == "" }
