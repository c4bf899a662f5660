package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"styleswipe/internal/model"
)

func TestFetchCandidate_RequestAndMapping(t *testing.T) {
	t.Parallel()

	var got candidateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get_outfit_data" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(candidateResponse{
			ProductID:    "p1",
			ImageURLs:    []string{"https://img/main.jpg", "https://img/detail.jpg"},
			ProductName:  "Silk Top",
			DesignerName: "Ganni",
			ProductPrice: "$128.00",
			ProductURL:   "https://shop/p1",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	cand, err := c.FetchCandidate(context.Background(), []int{13198, 13235}, "", "")
	if err != nil {
		t.Fatalf("FetchCandidate: %v", err)
	}

	// Empty bounds go out as 0 / 999999; JSON has no +Inf.
	if got.MinPrice != 0 || got.MaxPrice != maxPriceSentinel {
		t.Fatalf("price bounds: %v / %v", got.MinPrice, got.MaxPrice)
	}
	if len(got.CategoryArray) != 2 || got.CategoryArray[0] != 13198 {
		t.Fatalf("categoryArray: %v", got.CategoryArray)
	}

	if cand.ProductID != "p1" || cand.Name != "Silk Top" || cand.Designer != "Ganni" {
		t.Fatalf("candidate: %#v", cand)
	}
	if cand.ImageURL != "https://img/main.jpg" || cand.DetailImageURL != "https://img/detail.jpg" {
		t.Fatalf("image mapping: %#v", cand)
	}
}

func TestFetchCandidate_FailureModesAreUniform(t *testing.T) {
	t.Parallel()

	// Every failure mode must come back as *FetchError so the deck treats
	// them identically.
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-2xx", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		}},
		{"missing productId", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"productName":"no id"}`))
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			c := NewClient(srv.URL, nil)
			_, err := c.FetchCandidate(context.Background(), []int{13198}, "", "")
			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("want *FetchError, got %T: %v", err, err)
			}
		})
	}

	t.Run("network error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close() // connection refused from here on

		c := NewClient(srv.URL, nil)
		_, err := c.FetchCandidate(context.Background(), []int{13198}, "", "")
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("want *FetchError, got %T: %v", err, err)
		}
	})
}

func TestLikeItem_Payload(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/like-item" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	cand := model.Candidate{ProductID: "p1", Name: "Silk Top", Price: "$128.00"}
	if err := c.LikeItem(context.Background(), "user-123", model.SlotTop, cand); err != nil {
		t.Fatalf("LikeItem: %v", err)
	}

	if got["userId"] != "user-123" || got["itemType"] != "top" {
		t.Fatalf("payload: %#v", got)
	}
	if got["itemId"] != "p1" || got["productName"] != "Silk Top" {
		t.Fatalf("flattened item fields: %#v", got)
	}
}

func TestLikedItems_DoubleEncodedResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/getLikedItems/user-123" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"body":"{\"likedItems\":[{\"itemId\":\"i1\"}],\"likedOutfits\":[]}"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	col, err := c.LikedItems(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("LikedItems: %v", err)
	}
	if len(col.Items) != 1 || col.Items[0].ItemID != "i1" {
		t.Fatalf("collection: %#v", col)
	}
}

func TestLikedItems_GarbageIsInvalidResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.LikedItems(context.Background(), "user-123")
	var ire *InvalidResponseError
	if !errors.As(err, &ire) {
		t.Fatalf("want *InvalidResponseError, got %T: %v", err, err)
	}
}

func TestRegisterUser_UsesBackendFieldNames(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	if err := c.RegisterUser(context.Background(), "user-123", "Ada"); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	// The users endpoint predates the camelCase convention.
	if got["UserID"] != "user-123" || got["Name"] != "Ada" {
		t.Fatalf("payload: %#v", got)
	}
}

func TestPriceOr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in        string
		unbounded float64
		want      float64
	}{
		{"", 999999, 999999},
		{"  ", 0, 0},
		{"50", 999999, 50},
		{"49.99", 0, 49.99},
		{"cheap", 999999, 999999},
		{"-10", 999999, 999999},
	}
	for _, tc := range tests {
		if got := priceOr(tc.in, tc.unbounded); got != tc.want {
			t.Fatalf("priceOr(%q, %v) = %v, want %v", tc.in, tc.unbounded, got, tc.want)
		}
	}
}
