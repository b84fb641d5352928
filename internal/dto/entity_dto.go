package dto

import "time"

type EntityResponse struct {
	Id        int64      `json:"id"`
	Type      string     `json:"type"`
	Label     string     `json:"label"`
	Color     string     `json:"color"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type UpdateEntityRequest struct {
	Id    int64   `json:"-"`
	Type  *string `json:"type" validate:"omitempty,min=1"`
	Label *string `json:"label" validate:"omitempty,min=1"`
	Color *string `json:"color" validate:"omitempty,hexcolor"`
}

func (r *UpdateEntityRequest) IsEmpty() bool {
	return r.Type == nil && r.Label == nil && r.Color == nil
}

type MergedEntityFields struct {
	Type  string `json:"type" validate:"required"`
	Label string `json:"label" validate:"required"`
	Color string `json:"color" validate:"required,hexcolor"`
}

type MergeEntitiesRequest struct {
	EntityIds    []int64             `json:"entity_ids" validate:"required,min=2,unique"`
	MergedEntity *MergedEntityFields `json:"merged_entity" validate:"required"`
}

type MergeEntitiesResponse struct {
	Success  bool  `json:"success"`
	MergedId int64 `json:"merged_id"`
}
