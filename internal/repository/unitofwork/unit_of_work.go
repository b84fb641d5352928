package unitofwork

import (
	"context"

	"ai-transcript-notes-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	MessageRepository() contract.MessageRepository
	NamedEntityRepository() contract.NamedEntityRepository
	MessageEntityRepository() contract.MessageEntityRepository
}
