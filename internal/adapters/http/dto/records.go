package dto

import "github.com/jsamuelsen/go-container-controller/internal/domain"

// Save outcomes reported in mutation responses.
const (
	ResultSaved   = "saved"
	ResultNoop    = "noop"
	ResultPending = "pending"
)

// CreateRecordRequest is the body of POST /groups/:key/records.
// An empty ID lets the work context assign one.
type CreateRecordRequest struct {
	Entity     string         `json:"entity"     validate:"required,notblank,max=128"`
	ID         string         `json:"id"         validate:"omitempty,notblank,max=256"`
	Attributes map[string]any `json:"attributes"`
}

// UpdateRecordRequest is the body of PUT /groups/:key/records/:entity/:id.
type UpdateRecordRequest struct {
	Attributes map[string]any `json:"attributes" validate:"required"`
}

// MutationQuery carries the save-failure policy of a mutation.
type MutationQuery struct {
	OnError string `form:"on_error" validate:"omitempty,oneof=rollback none"`
}

// RecordResponse is the wire form of a record.
type RecordResponse struct {
	Entity     string         `json:"entity"`
	ID         string         `json:"id"`
	Attributes map[string]any `json:"attributes"`
}

// NewRecordResponse converts a domain record.
func NewRecordResponse(r *domain.Record) RecordResponse {
	attrs := r.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}

	return RecordResponse{Entity: r.Entity, ID: r.ID, Attributes: attrs}
}

// NewRecordResponses converts a slice of domain records.
func NewRecordResponses(records []*domain.Record) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, NewRecordResponse(r))
	}

	return out
}

// MutationResponse answers a mutation once its background save completed.
type MutationResponse struct {
	Group  string          `json:"group"`
	Result string          `json:"result"`
	Record *RecordResponse `json:"record,omitempty"`
}
