package docstore

import (
	"encoding/base64"
	"encoding/json"
)

type cursorToken struct {
	K string          `json:"k"`
	V json.RawMessage `json:"v,omitempty"`
}

// EncodeCursor turns a position into an opaque token.
func EncodeCursor(p Position) string {
	raw, _ := json.Marshal(cursorToken{K: p.Key, V: p.Value})
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses a token produced by EncodeCursor.
func DecodeCursor(token string) (*Position, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	var t cursorToken
	if err := json.Unmarshal(raw, &t); err != nil || t.K == "" {
		return nil, ErrInvalidCursor
	}
	return &Position{Key: t.K, Value: t.V}, nil
}

// PositionOf returns the position of doc under the given ordering.
func PositionOf(doc Document, order *OrderBy) Position {
	if order == nil {
		return Position{Key: doc.Key}
	}
	v, err := json.Marshal(doc.Fields[order.Field])
	if err != nil {
		v = json.RawMessage("null")
	}
	return Position{Key: doc.Key, Value: v}
}
