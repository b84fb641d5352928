package service

import (
	"context"
	"errors"
	"fmt"

	"ai-transcript-notes-be/internal/dto"
	"ai-transcript-notes-be/internal/entity"
	"ai-transcript-notes-be/internal/pkg/apperror"
	"ai-transcript-notes-be/internal/pkg/logger"
	"ai-transcript-notes-be/internal/repository/specification"
	"ai-transcript-notes-be/internal/repository/unitofwork"
	"ai-transcript-notes-be/pkg/events"

	"gorm.io/gorm"
)

const (
	entityNotFound = "Entity not found"
	entityConflict = "An entity with this type and label already exists"
)

type IEntityService interface {
	List(ctx context.Context) ([]dto.EntityResponse, error)
	FindOrCreate(ctx context.Context, entityType, label, color string) (int64, error)
	Update(ctx context.Context, req *dto.UpdateEntityRequest) error
	Merge(ctx context.Context, req *dto.MergeEntitiesRequest) (*dto.MergeEntitiesResponse, error)
}

type entityService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewEntityService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher events.Publisher,
	logger logger.ILogger,
) IEntityService {
	return &entityService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (s *entityService) List(ctx context.Context) ([]dto.EntityResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	list, err := uow.NamedEntityRepository().FindAll(ctx, specification.ByTypeThenLabel{})
	if err != nil {
		return nil, err
	}
	return toEntityResponses(list), nil
}

// FindOrCreate is idempotent per (type, label); color only applies to a new row.
func (s *entityService) FindOrCreate(ctx context.Context, entityType, label, color string) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	e := entity.NamedEntity{Type: entityType, Label: label, Color: color}
	if _, err := uow.NamedEntityRepository().FindOrCreate(ctx, &e); err != nil {
		return 0, err
	}
	return e.Id, nil
}

func (s *entityService) Update(ctx context.Context, req *dto.UpdateEntityRequest) error {
	if req.IsEmpty() {
		return apperror.Validation("Missing fields to update")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	e, err := uow.NamedEntityRepository().FindOne(ctx, specification.ByID{ID: req.Id}, specification.ForUpdate{})
	if err != nil {
		return err
	}
	if e == nil {
		return apperror.NotFound(entityNotFound)
	}

	if req.Type != nil {
		e.Type = *req.Type
	}
	if req.Label != nil {
		e.Label = *req.Label
	}
	if req.Color != nil {
		e.Color = *req.Color
	}

	if err := uow.NamedEntityRepository().Update(ctx, e); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict(entityConflict, err)
		}
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	publishEvent(ctx, s.eventPublisher, s.logger, events.EntityUpdated, map[string]interface{}{
		"entity_id": e.Id,
		"type":      e.Type,
		"label":     e.Label,
	})
	return nil
}

// Merge replaces the source entities with one new entity in a single transaction. Sources
// are locked first, so overlapping merges run one after the other and the loser sees its
// sources gone. Sources are deleted before the insert, which lets the merged pair reuse a
// source's (type, label).
func (s *entityService) Merge(ctx context.Context, req *dto.MergeEntitiesRequest) (*dto.MergeEntitiesResponse, error) {
	ids := distinctIds(req.EntityIds)
	if len(ids) < 2 {
		return nil, apperror.Validation("At least two distinct entities are required to merge")
	}
	if req.MergedEntity == nil || req.MergedEntity.Type == "" || req.MergedEntity.Label == "" || req.MergedEntity.Color == "" {
		return nil, apperror.Validation("Merged entity must have type, label and color")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	entities := uow.NamedEntityRepository()
	links := uow.MessageEntityRepository()

	sources, err := entities.FindAll(ctx,
		specification.ByIDs{IDs: ids},
		specification.OrderBy{Field: "id"},
		specification.ForUpdate{},
	)
	if err != nil {
		return nil, err
	}
	if missing := missingIds(ids, sources); len(missing) > 0 {
		return nil, apperror.NotFound(fmt.Sprintf("%s: %v", entityNotFound, missing))
	}

	messageIds, err := links.FindMessageIdsByEntityIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	if _, err := entities.DeleteByIds(ctx, ids); err != nil {
		return nil, err
	}

	merged := entity.NamedEntity{
		Type:  req.MergedEntity.Type,
		Label: req.MergedEntity.Label,
		Color: req.MergedEntity.Color,
	}
	if err := entities.Create(ctx, &merged); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict(entityConflict, err)
		}
		return nil, err
	}

	newLinks := make([]entity.MessageEntity, len(messageIds))
	for i, messageId := range messageIds {
		newLinks[i] = entity.MessageEntity{MessageId: messageId, EntityId: merged.Id}
	}
	if err := links.LinkMany(ctx, newLinks); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("ENTITIES", "Entities merged", map[string]interface{}{
		"source_ids": ids,
		"merged_id":  merged.Id,
		"messages":   len(messageIds),
	})
	publishEvent(ctx, s.eventPublisher, s.logger, events.EntitiesMerged, map[string]interface{}{
		"source_ids": ids,
		"merged_id":  merged.Id,
	})

	return &dto.MergeEntitiesResponse{Success: true, MergedId: merged.Id}, nil
}

func missingIds(ids []int64, found []*entity.NamedEntity) []int64 {
	present := make(map[int64]bool, len(found))
	for _, e := range found {
		present[e.Id] = true
	}
	missing := []int64{}
	for _, id := range ids {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

func distinctIds(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
