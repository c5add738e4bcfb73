package dto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// DefaultLimit is the default number of records per page.
const DefaultLimit = 20

// MaxLimit is the maximum allowed records per page.
const MaxLimit = 100

// Cursor errors.
var (
	// ErrInvalidCursor is returned when cursor decoding fails.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrNoCursor signals a first page request.
	ErrNoCursor = errors.New("no cursor provided")
)

// PaginationRequest represents pagination parameters from the request.
type PaginationRequest struct {
	// Cursor is an opaque string from a previous response's NextCursor.
	Cursor string `form:"cursor"`

	// Limit is the maximum number of records to return (1-100, default 20).
	Limit int `form:"limit" validate:"omitempty,gte=1,lte=100"`
}

// GetLimit returns the limit with defaults applied.
func (p *PaginationRequest) GetLimit() int {
	if p.Limit <= 0 {
		return DefaultLimit
	}

	return min(p.Limit, MaxLimit)
}

// After returns the record ID the page starts after, or "" for the first page.
func (p *PaginationRequest) After() (string, error) {
	cursor, err := DecodeCursor(p.Cursor)
	if errors.Is(err, ErrNoCursor) {
		return "", nil
	}

	if err != nil {
		return "", err
	}

	return cursor.ID, nil
}

// PaginatedResponse is a page of items in ascending ID order.
type PaginatedResponse[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
}

// Paginate slices items, already sorted by id, into the page following
// the after ID.
func Paginate[T any](items []T, after string, limit int, id func(T) string) *PaginatedResponse[T] {
	start := 0
	if after != "" {
		for start < len(items) && id(items[start]) <= after {
			start++
		}
	}

	page := items[start:]
	hasMore := len(page) > limit
	if hasMore {
		page = page[:limit]
	}

	resp := &PaginatedResponse[T]{Items: page, HasMore: hasMore}
	if resp.Items == nil {
		resp.Items = []T{}
	}

	if hasMore {
		resp.NextCursor = EncodeCursor(&CursorData{ID: id(page[len(page)-1])})
	}

	return resp
}

// CursorData is the position encoded in a pagination cursor.
type CursorData struct {
	ID string `json:"id"`
}

// EncodeCursor encodes cursor data to a base64 string.
func EncodeCursor(data *CursorData) string {
	if data == nil {
		return ""
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return ""
	}

	return base64.URLEncoding.EncodeToString(jsonBytes)
}

// DecodeCursor decodes a base64 cursor string to cursor data.
// Returns ErrNoCursor if the encoded string is empty.
func DecodeCursor(encoded string) (*CursorData, error) {
	if encoded == "" {
		return nil, ErrNoCursor
	}

	jsonBytes, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var data CursorData
	if err := json.Unmarshal(jsonBytes, &data); err != nil || data.ID == "" {
		return nil, ErrInvalidCursor
	}

	return &data, nil
}
