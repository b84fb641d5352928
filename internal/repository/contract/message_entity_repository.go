package contract

import (
	"context"

	"ai-transcript-notes-be/internal/entity"
	"ai-transcript-notes-be/internal/repository/specification"
)

type MessageEntityRepository interface {
	// Link is idempotent; an existing pair is left as is.
	Link(ctx context.Context, messageId, entityId int64) error
	LinkMany(ctx context.Context, links []entity.MessageEntity) error
	DeleteByMessageId(ctx context.Context, messageId int64) error
	FindMessageIdsByEntityIds(ctx context.Context, entityIds []int64) ([]int64, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]entity.MessageEntity, error)
}
