package api

import (
	"encoding/json"
	"fmt"

	"styleswipe/internal/model"
)

// unwrapBody normalizes API gateway proxy responses. The interesting payload
// may arrive three ways:
//
//	{"likedItems": [...]}                  plain document
//	{"body": {"likedItems": [...]}}        proxy-wrapped object
//	{"body": "{\"likedItems\": [...]}"}    proxy-wrapped, double-encoded
//
// In the third form the body is a JSON *string* holding the document, and
// exactly one extra encoding layer is removed. Anything else is a decode
// error for the caller to classify.
func unwrapBody(raw []byte) ([]byte, error) {
	var envelope struct {
		Body json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Body) == 0 {
		return raw, nil
	}
	if envelope.Body[0] != '"' {
		return envelope.Body, nil
	}
	var inner string
	if err := json.Unmarshal(envelope.Body, &inner); err != nil {
		return nil, fmt.Errorf("unwrapping double-encoded body: %w", err)
	}
	return []byte(inner), nil
}

func decodeLikedCollection(raw []byte) (model.LikedCollection, error) {
	body, err := unwrapBody(raw)
	if err != nil {
		return model.LikedCollection{}, err
	}
	var col model.LikedCollection
	if err := json.Unmarshal(body, &col); err != nil {
		return model.LikedCollection{}, err
	}
	if col.Items == nil {
		col.Items = []model.LikedItem{}
	}
	if col.Outfits == nil {
		col.Outfits = []model.LikedOutfit{}
	}
	return col, nil
}
