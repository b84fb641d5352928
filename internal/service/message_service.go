package service

import (
	"context"
	"sort"

	"ai-transcript-notes-be/internal/dto"
	"ai-transcript-notes-be/internal/entity"
	"ai-transcript-notes-be/internal/pkg/apperror"
	"ai-transcript-notes-be/internal/pkg/logger"
	"ai-transcript-notes-be/internal/repository/specification"
	"ai-transcript-notes-be/internal/repository/unitofwork"
	"ai-transcript-notes-be/pkg/events"
	"ai-transcript-notes-be/pkg/utils"
)

const messageNotFound = "Message not found"

type IMessageService interface {
	List(ctx context.Context, req dto.ListMessagesRequest) ([]dto.DayMessagesResponse, error)
	Stats(ctx context.Context) (*dto.StatsResponse, error)
	Create(ctx context.Context, req *dto.CreateMessageRequest) (*dto.CreateMessageResponse, error)
	Update(ctx context.Context, req *dto.UpdateMessageRequest) (*dto.UpdateMessageResponse, error)
	Delete(ctx context.Context, id int64) error
	Entities(ctx context.Context, id int64) ([]dto.EntityResponse, error)
	ExtractEntities(ctx context.Context, id int64) (*dto.ExtractEntitiesResponse, error)
}

type messageService struct {
	uowFactory        unitofwork.RepositoryFactory
	extractionService IExtractionService
	eventPublisher    events.Publisher
	logger            logger.ILogger
}

func NewMessageService(
	uowFactory unitofwork.RepositoryFactory,
	extractionService IExtractionService,
	eventPublisher events.Publisher,
	logger logger.ILogger,
) IMessageService {
	return &messageService{
		uowFactory:        uowFactory,
		extractionService: extractionService,
		eventPublisher:    eventPublisher,
		logger:            logger,
	}
}

// List groups messages by calendar day, newest day first and newest message first within
// a day. The range filter only applies when both bounds are given.
func (s *messageService) List(ctx context.Context, req dto.ListMessagesRequest) ([]dto.DayMessagesResponse, error) {
	specs := []specification.Specification{}
	if req.StartDate != "" && req.EndDate != "" {
		specs = append(specs, specification.TimestampBetween{Start: req.StartDate, End: req.EndDate})
	}
	specs = append(specs, specification.NewestFirst{})

	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.MessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	days := []dto.DayMessagesResponse{}
	index := map[string]int{}
	for _, m := range messages {
		day, clock := utils.DayAndClock(m.Timestamp)
		i, ok := index[day]
		if !ok {
			i = len(days)
			index[day] = i
			days = append(days, dto.DayMessagesResponse{Date: day, Messages: []dto.MessageResponse{}})
		}
		days[i].Messages = append(days[i].Messages, dto.MessageResponse{
			Id:            m.Id,
			Timestamp:     m.Timestamp,
			Transcript:    m.Transcript,
			FormattedTime: clock,
		})
	}

	sort.SliceStable(days, func(a, b int) bool {
		return days[a].Date > days[b].Date
	})
	return days, nil
}

func (s *messageService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	stats, err := uow.MessageRepository().Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.StatsResponse{
		TotalMessages: stats.TotalMessages,
		FirstMessage:  stats.FirstMessage,
		LastMessage:   stats.LastMessage,
	}, nil
}

func (s *messageService) Create(ctx context.Context, req *dto.CreateMessageRequest) (*dto.CreateMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	message := entity.Message{
		Timestamp:  req.Timestamp,
		Transcript: req.Transcript,
	}
	if err := uow.MessageRepository().Create(ctx, &message); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.eventPublisher, s.logger, events.MessageCreated, map[string]interface{}{
		"message_id": message.Id,
		"timestamp":  message.Timestamp,
	})

	entities, warning := s.extract(ctx, message.Id, message.Transcript)
	return &dto.CreateMessageResponse{
		Id:       message.Id,
		Success:  true,
		Entities: entities,
		Warning:  warning,
	}, nil
}

// Update applies the given fields. A new transcript triggers re-extraction; otherwise the
// message's current entities are returned.
func (s *messageService) Update(ctx context.Context, req *dto.UpdateMessageRequest) (*dto.UpdateMessageResponse, error) {
	if req.IsEmpty() {
		return nil, apperror.Validation("No fields to update")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	message, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, apperror.NotFound(messageNotFound)
	}

	if req.Timestamp != nil {
		message.Timestamp = *req.Timestamp
	}
	if req.Transcript != nil {
		message.Transcript = *req.Transcript
	}
	if err := uow.MessageRepository().Update(ctx, message); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.eventPublisher, s.logger, events.MessageUpdated, map[string]interface{}{
		"message_id":         message.Id,
		"transcript_changed": req.Transcript != nil,
	})

	res := &dto.UpdateMessageResponse{Success: true}
	if req.Transcript != nil {
		res.Entities, res.Warning = s.extract(ctx, message.Id, message.Transcript)
		return res, nil
	}

	current, err := uow.NamedEntityRepository().FindByMessageId(ctx, message.Id)
	if err != nil {
		return nil, err
	}
	res.Entities = toEntityResponses(current)
	return res, nil
}

func (s *messageService) Delete(ctx context.Context, id int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	message, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if message == nil {
		return apperror.NotFound(messageNotFound)
	}

	if err := uow.MessageRepository().Delete(ctx, id); err != nil {
		return err
	}

	publishEvent(ctx, s.eventPublisher, s.logger, events.MessageDeleted, map[string]interface{}{
		"message_id": id,
	})
	return nil
}

func (s *messageService) Entities(ctx context.Context, id int64) ([]dto.EntityResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	message, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, apperror.NotFound(messageNotFound)
	}

	list, err := uow.NamedEntityRepository().FindByMessageId(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEntityResponses(list), nil
}

// ExtractEntities is the manual trigger. Unlike create/update, storage failures are
// returned to the caller.
func (s *messageService) ExtractEntities(ctx context.Context, id int64) (*dto.ExtractEntitiesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	message, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, apperror.NotFound(messageNotFound)
	}

	result, err := s.extractionService.ExtractAndPersist(ctx, message.Id, message.Transcript)
	if err != nil {
		return nil, apperror.Internal("Error extracting entities", err)
	}
	return &dto.ExtractEntitiesResponse{
		Success:  true,
		Entities: result.Entities,
		Warning:  result.Warning,
	}, nil
}

// extract never fails the surrounding CRUD call; errors become warnings.
func (s *messageService) extract(ctx context.Context, messageId int64, transcript string) ([]dto.EntityResponse, string) {
	result, err := s.extractionService.ExtractAndPersist(ctx, messageId, transcript)
	if err != nil {
		return []dto.EntityResponse{}, "Error extracting entities: " + err.Error()
	}
	return result.Entities, result.Warning
}
