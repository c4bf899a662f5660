package tui

import (
	"reflect"
	"testing"

	"styleswipe/internal/model"
)

func TestFilterForm_CriteriaRoundTrip(t *testing.T) {
	t.Parallel()

	in := model.FilterCriteria{
		MinPrice: "50",
		MaxPrice: "200",
		Bottoms:  []string{"Jeans"},
		Footwear: []string{"Sneakers & Athletic"},
	}
	ff := newFilterForm(in)
	out := ff.criteria()
	if !out.Equal(in) {
		t.Fatalf("untouched form changed the criteria:\nin:  %#v\nout: %#v", in, out)
	}
}

func TestFilterForm_ToggleLabel(t *testing.T) {
	t.Parallel()

	ff := newFilterForm(model.FilterCriteria{})

	// Find "Jeans" among the options and toggle it via the cursor.
	idx := -1
	for i, o := range ff.labels {
		if o.kind == model.ApparelBottoms && o.label == "Jeans" {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatal("Jeans not offered")
	}
	ff.cursor = 3 + idx
	ff.toggle()

	got := ff.criteria()
	if !reflect.DeepEqual(got.Bottoms, []string{"Jeans"}) {
		t.Fatalf("bottoms after toggle: %v", got.Bottoms)
	}

	// Toggling again deselects; empty selection means unrestricted.
	ff.toggle()
	if len(ff.criteria().Bottoms) != 0 {
		t.Fatal("second toggle should deselect")
	}
}

func TestFilterForm_TreeSwitchResetsSelections(t *testing.T) {
	t.Parallel()

	ff := newFilterForm(model.FilterCriteria{Bottoms: []string{"Jeans"}})

	// Switch to the what's-new tree; the label ids differ per tree, so
	// selections cannot carry over.
	ff.cursor = 2
	ff.toggle()

	got := ff.criteria()
	if !got.IsNew {
		t.Fatal("tree toggle not staged")
	}
	if len(got.Tops)+len(got.Bottoms)+len(got.Footwear) != 0 {
		t.Fatalf("selections survived the tree switch: %#v", got)
	}
}
