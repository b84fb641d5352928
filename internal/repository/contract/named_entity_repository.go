package contract

import (
	"context"

	"ai-transcript-notes-be/internal/entity"
	"ai-transcript-notes-be/internal/repository/specification"
)

type NamedEntityRepository interface {
	// FindOrCreate inserts e unless its (type, label) already exists, then loads the stored
	// row into e. created reports whether a new row was written.
	FindOrCreate(ctx context.Context, e *entity.NamedEntity) (created bool, err error)
	Create(ctx context.Context, e *entity.NamedEntity) error
	Update(ctx context.Context, e *entity.NamedEntity) error
	DeleteByIds(ctx context.Context, ids []int64) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.NamedEntity, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NamedEntity, error)
	FindByMessageId(ctx context.Context, messageId int64) ([]*entity.NamedEntity, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
