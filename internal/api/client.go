// Package api is the HTTP client for the StyleSwipe backend. Every endpoint
// is consumed as-is; recommendation, ranking and trending aggregation are
// entirely server-side.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"styleswipe/internal/model"
)

// DefaultBaseURL is the production API gateway stage.
const DefaultBaseURL = "https://hayhuoxszf.execute-api.us-east-1.amazonaws.com/prod"

// maxPriceSentinel stands in for "unbounded" on the wire; JSON has no +Inf.
const maxPriceSentinel = 999999

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, log *zap.Logger) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

type candidateRequest struct {
	CategoryArray []int   `json:"categoryArray"`
	MinPrice      float64 `json:"minPrice"`
	MaxPrice      float64 `json:"maxPrice"`
}

type candidateResponse struct {
	ProductID    string   `json:"productId"`
	ImageURLs    []string `json:"imageUrls"`
	ProductName  string   `json:"productName"`
	DesignerName string   `json:"designerName"`
	ProductPrice string   `json:"productPrice"`
	ProductURL   string   `json:"productUrl"`
}

// FetchCandidate requests one recommendation for the given category id set
// and price range. Empty price bounds mean unbounded and are transmitted as
// 0 / 999999. Any failure mode (network, non-2xx, malformed body) comes back
// as a *FetchError; the caller treats them all as "no candidate this
// attempt" and decides whether to re-issue.
func (c *Client) FetchCandidate(ctx context.Context, categoryIDs []int, minPrice, maxPrice string) (model.Candidate, error) {
	req := candidateRequest{
		CategoryArray: categoryIDs,
		MinPrice:      priceOr(minPrice, 0),
		MaxPrice:      priceOr(maxPrice, maxPriceSentinel),
	}
	var resp candidateResponse
	if err := c.post(ctx, "get_outfit_data", "/get_outfit_data", req, &resp); err != nil {
		return model.Candidate{}, err
	}
	if strings.TrimSpace(resp.ProductID) == "" {
		return model.Candidate{}, &FetchError{Op: "get_outfit_data", Err: fmt.Errorf("response missing productId")}
	}
	cand := model.Candidate{
		ProductID:  resp.ProductID,
		Name:       resp.ProductName,
		Designer:   resp.DesignerName,
		Price:      resp.ProductPrice,
		ProductURL: resp.ProductURL,
	}
	if len(resp.ImageURLs) > 0 {
		cand.ImageURL = resp.ImageURLs[0]
	}
	if len(resp.ImageURLs) > 1 {
		cand.DetailImageURL = resp.ImageURLs[1]
	}
	return cand, nil
}

// itemPayload is the flattened candidate shape shared by like-item and
// create-fit.
type itemPayload struct {
	ItemID       string `json:"itemId"`
	ImageURL     string `json:"imageUrl"`
	ProductName  string `json:"productName"`
	DesignerName string `json:"designerName"`
	ProductPrice string `json:"productPrice"`
	ProductURL   string `json:"productUrl"`
}

func toItemPayload(c model.Candidate) itemPayload {
	return itemPayload{
		ItemID:       c.ProductID,
		ImageURL:     c.ImageURL,
		ProductName:  c.Name,
		DesignerName: c.Designer,
		ProductPrice: c.Price,
		ProductURL:   c.ProductURL,
	}
}

// LikeItem records a single-item like. The response body is ignored beyond
// success/failure.
func (c *Client) LikeItem(ctx context.Context, userID string, kind model.SlotKind, cand model.Candidate) error {
	body := struct {
		UserID   string `json:"userId"`
		ItemType string `json:"itemType"`
		itemPayload
	}{UserID: userID, ItemType: kind.ItemType(), itemPayload: toItemPayload(cand)}
	return c.post(ctx, "like-item", "/like-item", body, nil)
}

// CreateFit saves a full three-piece outfit.
func (c *Client) CreateFit(ctx context.Context, userID string, top, bottom, shoes model.Candidate) error {
	body := struct {
		UserID string      `json:"userId"`
		Top    itemPayload `json:"top"`
		Bottom itemPayload `json:"bottom"`
		Shoes  itemPayload `json:"shoes"`
	}{UserID: userID, Top: toItemPayload(top), Bottom: toItemPayload(bottom), Shoes: toItemPayload(shoes)}
	return c.post(ctx, "create-fit", "/create-fit", body, nil)
}

// LikedItems fetches the server's liked items and outfits for a user.
//
// The API gateway sometimes returns the collection double-encoded: a JSON
// document whose `body` is itself a JSON *string*. Exactly one extra layer
// is unwrapped; anything deeper is an *InvalidResponseError.
func (c *Client) LikedItems(ctx context.Context, userID string) (model.LikedCollection, error) {
	raw, err := c.get(ctx, "getLikedItems", "/getLikedItems/"+userID)
	if err != nil {
		return model.LikedCollection{}, err
	}
	col, err := decodeLikedCollection(raw)
	if err != nil {
		return model.LikedCollection{}, &InvalidResponseError{Op: "getLikedItems", Err: err}
	}
	return col, nil
}

type trendingResponse struct {
	TrendingItems []model.TrendingItem `json:"trendingItems"`
}

// Trending fetches the trending feed.
func (c *Client) Trending(ctx context.Context) ([]model.TrendingItem, error) {
	raw, err := c.get(ctx, "trending", "/trending")
	if err != nil {
		return nil, err
	}
	body, err := unwrapBody(raw)
	if err != nil {
		return nil, &InvalidResponseError{Op: "trending", Err: err}
	}
	var resp trendingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &InvalidResponseError{Op: "trending", Err: err}
	}
	return resp.TrendingItems, nil
}

// LikeTrending records a like against a trending feed entry. count is the
// client-side count at the moment of the tap; the server re-aggregates.
func (c *Client) LikeTrending(ctx context.Context, userID, itemID string, count int) error {
	body := struct {
		UserID string `json:"userId"`
		ItemID string `json:"itemId"`
		Count  int    `json:"count"`
	}{UserID: userID, ItemID: itemID, Count: count}
	return c.post(ctx, "like-trending", "/trending", body, nil)
}

// RegisterUser announces a locally generated identity to the backend.
// There is no verification step; the id is trusted input on later requests.
func (c *Client) RegisterUser(ctx context.Context, userID, name string) error {
	body := struct {
		UserID string `json:"UserID"`
		Name   string `json:"Name"`
	}{UserID: userID, Name: name}
	return c.post(ctx, "users", "/users", body, nil)
}

func (c *Client) post(ctx context.Context, op, path string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	raw, err := c.do(op, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &FetchError{Op: op, Err: err}
	}
	return nil
}

func (c *Client) get(ctx context.Context, op, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	return c.do(op, req)
}

func (c *Client) do(op string, req *http.Request) ([]byte, error) {
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("op", op),
			zap.String("requestId", reqID),
			zap.Error(err))
		return nil, &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	c.log.Debug("request done",
		zap.String("op", op),
		zap.String("requestId", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Op: op, Status: resp.StatusCode}
	}
	return raw, nil
}

// priceOr converts a user-entered price bound to its wire value. Empty (or
// unparseable) input means unbounded.
func priceOr(s string, unbounded float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return unbounded
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return unbounded
	}
	return v
}
