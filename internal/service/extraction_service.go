package service

import (
	"context"
	"fmt"

	"ai-transcript-notes-be/internal/dto"
	"ai-transcript-notes-be/internal/entity"
	"ai-transcript-notes-be/internal/pkg/logger"
	"ai-transcript-notes-be/internal/repository/unitofwork"
	"ai-transcript-notes-be/pkg/events"
	"ai-transcript-notes-be/pkg/extraction"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("ai-transcript-notes/service")

// UnreachableWarning is the soft failure attached to responses when the backend is down.
func UnreachableWarning(provider string) string {
	return fmt.Sprintf("LLM service (%s) is not reachable. Please check your configuration and ensure the service is running.", provider)
}

type ExtractionResult struct {
	Entities []dto.EntityResponse
	Warning  string
}

type IExtractionService interface {
	// ExtractAndPersist replaces the message's associations with a fresh extraction.
	// An unreachable backend yields a warning and leaves storage untouched; storage
	// failures are returned as errors after a full rollback.
	ExtractAndPersist(ctx context.Context, messageId int64, transcript string) (*ExtractionResult, error)
}

type extractionService struct {
	uowFactory     unitofwork.RepositoryFactory
	adapterFactory IAdapterFactory
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewExtractionService(
	uowFactory unitofwork.RepositoryFactory,
	adapterFactory IAdapterFactory,
	eventPublisher events.Publisher,
	logger logger.ILogger,
) IExtractionService {
	return &extractionService{
		uowFactory:     uowFactory,
		adapterFactory: adapterFactory,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (s *extractionService) ExtractAndPersist(ctx context.Context, messageId int64, transcript string) (*ExtractionResult, error) {
	ctx, span := tracer.Start(ctx, "ExtractAndPersist", trace.WithAttributes(attribute.Int64("message.id", messageId)))
	defer span.End()

	adapter, err := s.adapterFactory.Current(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "adapter")
		return nil, err
	}
	span.SetAttributes(attribute.String("llm.provider", adapter.ProviderName()))

	if !adapter.Connected() && !adapter.CheckConnectivity(ctx) {
		return s.degraded(ctx, messageId, adapter.ProviderName()), nil
	}

	found := adapter.Extract(ctx, transcript)
	if len(found) == 0 && !adapter.Connected() {
		// The call itself failed; keep the previous associations.
		return s.degraded(ctx, messageId, adapter.ProviderName()), nil
	}

	saved, err := s.persist(ctx, messageId, found)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist")
		s.logger.Error("EXTRACTION", "Failed to save extracted entities", map[string]interface{}{
			"message_id": messageId,
			"error":      err.Error(),
		})
		return nil, err
	}
	span.SetAttributes(attribute.Int("entities.count", len(saved)))

	publishEvent(ctx, s.eventPublisher, s.logger, events.EntitiesExtracted, map[string]interface{}{
		"message_id": messageId,
		"provider":   adapter.ProviderName(),
		"count":      len(saved),
	})
	return &ExtractionResult{Entities: saved}, nil
}

func (s *extractionService) degraded(ctx context.Context, messageId int64, provider string) *ExtractionResult {
	warning := UnreachableWarning(provider)
	s.logger.Warn("EXTRACTION", "Extraction skipped", map[string]interface{}{
		"message_id": messageId,
		"provider":   provider,
	})
	publishEvent(ctx, s.eventPublisher, s.logger, events.ExtractionDegraded, map[string]interface{}{
		"message_id": messageId,
		"provider":   provider,
	})
	return &ExtractionResult{Entities: []dto.EntityResponse{}, Warning: warning}
}

// persist runs as one transaction: clear the message's links, then find-or-create each
// distinct (type, label) and link it. Stored colors win over freshly derived ones.
func (s *extractionService) persist(ctx context.Context, messageId int64, found []extraction.Entity) ([]dto.EntityResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.MessageEntityRepository().DeleteByMessageId(ctx, messageId); err != nil {
		return nil, err
	}

	type identity struct{ typ, label string }
	seen := make(map[identity]bool, len(found))
	saved := make([]dto.EntityResponse, 0, len(found))

	for _, f := range found {
		key := identity{f.Type, f.Label}
		if seen[key] {
			continue
		}
		seen[key] = true

		e := entity.NamedEntity{Type: f.Type, Label: f.Label, Color: f.Color}
		if _, err := uow.NamedEntityRepository().FindOrCreate(ctx, &e); err != nil {
			return nil, fmt.Errorf("find or create entity %s/%s: %w", f.Type, f.Label, err)
		}
		if err := uow.MessageEntityRepository().Link(ctx, messageId, e.Id); err != nil {
			return nil, fmt.Errorf("link entity %d: %w", e.Id, err)
		}
		saved = append(saved, toEntityResponse(&e))
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return saved, nil
}

func toEntityResponse(e *entity.NamedEntity) dto.EntityResponse {
	res := dto.EntityResponse{
		Id:    e.Id,
		Type:  e.Type,
		Label: e.Label,
		Color: e.Color,
	}
	if !e.CreatedAt.IsZero() {
		createdAt := e.CreatedAt
		res.CreatedAt = &createdAt
	}
	if !e.UpdatedAt.IsZero() {
		updatedAt := e.UpdatedAt
		res.UpdatedAt = &updatedAt
	}
	return res
}

func toEntityResponses(list []*entity.NamedEntity) []dto.EntityResponse {
	res := make([]dto.EntityResponse, 0, len(list))
	for _, e := range list {
		res = append(res, toEntityResponse(e))
	}
	return res
}
