package mapper

import (
	"ai-transcript-notes-be/internal/entity"
	"ai-transcript-notes-be/internal/model"
)

type NamedEntityMapper struct{}

func NewNamedEntityMapper() *NamedEntityMapper {
	return &NamedEntityMapper{}
}

func (m *NamedEntityMapper) ToEntity(e *model.NamedEntity) *entity.NamedEntity {
	if e == nil {
		return nil
	}
	return &entity.NamedEntity{
		Id:        e.Id,
		Type:      e.Type,
		Label:     e.Label,
		Color:     e.Color,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *NamedEntityMapper) ToModel(e *entity.NamedEntity) *model.NamedEntity {
	if e == nil {
		return nil
	}
	return &model.NamedEntity{
		Id:        e.Id,
		Type:      e.Type,
		Label:     e.Label,
		Color:     e.Color,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *NamedEntityMapper) ToEntities(list []*model.NamedEntity) []*entity.NamedEntity {
	entities := make([]*entity.NamedEntity, len(list))
	for i, e := range list {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
