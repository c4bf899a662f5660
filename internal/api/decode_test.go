package api

import (
	"testing"
)

func TestUnwrapBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "plain document",
			raw:  `{"likedItems":[{"itemId":"a"}]}`,
			want: `{"likedItems":[{"itemId":"a"}]}`,
		},
		{
			name: "proxy-wrapped object",
			raw:  `{"body":{"likedItems":[]}}`,
			want: `{"likedItems":[]}`,
		},
		{
			name: "double-encoded body string",
			raw:  `{"body":"{\"likedItems\":[{\"itemId\":\"a\"}]}"}`,
			want: `{"likedItems":[{"itemId":"a"}]}`,
		},
		{
			name:    "not json at all",
			raw:     `<html>504</html>`,
			wantErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := unwrapBody([]byte(tc.raw))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("want error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unwrapBody: %v", err)
			}
			if string(got) != tc.want {
				t.Fatalf("want %s, got %s", tc.want, got)
			}
		})
	}
}

func TestDecodeLikedCollection_NilSlicesBecomeEmpty(t *testing.T) {
	t.Parallel()

	col, err := decodeLikedCollection([]byte(`{}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if col.Items == nil || col.Outfits == nil {
		t.Fatalf("want empty slices, got %#v", col)
	}
	if len(col.Items) != 0 || len(col.Outfits) != 0 {
		t.Fatalf("want empty collection, got %#v", col)
	}
}

func TestDecodeLikedCollection_DoubleEncoded(t *testing.T) {
	t.Parallel()

	raw := `{"body":"{\"likedItems\":[{\"itemId\":\"i1\",\"productName\":\"Silk Top\"}],\"likedOutfits\":[{\"outfitId\":\"o1\"}]}"}`
	col, err := decodeLikedCollection([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(col.Items) != 1 || col.Items[0].ItemID != "i1" || col.Items[0].Name != "Silk Top" {
		t.Fatalf("items: %#v", col.Items)
	}
	if len(col.Outfits) != 1 || col.Outfits[0].OutfitID != "o1" {
		t.Fatalf("outfits: %#v", col.Outfits)
	}
}
