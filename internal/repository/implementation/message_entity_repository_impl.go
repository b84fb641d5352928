package implementation

import (
	"context"

	"ai-transcript-notes-be/internal/entity"
	"ai-transcript-notes-be/internal/model"
	"ai-transcript-notes-be/internal/repository/contract"
	"ai-transcript-notes-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageEntityRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageEntityRepository(db *gorm.DB) contract.MessageEntityRepository {
	return &MessageEntityRepositoryImpl{db: db}
}

func (r *MessageEntityRepositoryImpl) Link(ctx context.Context, messageId, entityId int64) error {
	return r.LinkMany(ctx, []entity.MessageEntity{{MessageId: messageId, EntityId: entityId}})
}

func (r *MessageEntityRepositoryImpl) LinkMany(ctx context.Context, links []entity.MessageEntity) error {
	if len(links) == 0 {
		return nil
	}
	rows := make([]model.MessageEntity, len(links))
	for i, l := range links {
		rows[i] = model.MessageEntity{MessageId: l.MessageId, EntityId: l.EntityId}
	}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

func (r *MessageEntityRepositoryImpl) DeleteByMessageId(ctx context.Context, messageId int64) error {
	return r.db.WithContext(ctx).Where("message_id = ?", messageId).Delete(&model.MessageEntity{}).Error
}

func (r *MessageEntityRepositoryImpl) FindMessageIdsByEntityIds(ctx context.Context, entityIds []int64) ([]int64, error) {
	ids := []int64{}
	if len(entityIds) == 0 {
		return ids, nil
	}
	err := r.db.WithContext(ctx).
		Model(&model.MessageEntity{}).
		Distinct("message_id").
		Where("entity_id IN ?", entityIds).
		Order("message_id").
		Pluck("message_id", &ids).Error
	return ids, err
}

func (r *MessageEntityRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]entity.MessageEntity, error) {
	var rows []model.MessageEntity
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.MessageEntity{}), specs...)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	links := make([]entity.MessageEntity, len(rows))
	for i, row := range rows {
		links[i] = entity.MessageEntity{MessageId: row.MessageId, EntityId: row.EntityId}
	}
	return links, nil
}
