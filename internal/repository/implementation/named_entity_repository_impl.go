package implementation

import (
	"context"
	"errors"

	"ai-transcript-notes-be/internal/entity"
	"ai-transcript-notes-be/internal/mapper"
	"ai-transcript-notes-be/internal/model"
	"ai-transcript-notes-be/internal/repository/contract"
	"ai-transcript-notes-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NamedEntityRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NamedEntityMapper
}

func NewNamedEntityRepository(db *gorm.DB) contract.NamedEntityRepository {
	return &NamedEntityRepositoryImpl{
		db:     db,
		mapper: mapper.NewNamedEntityMapper(),
	}
}

// FindOrCreate relies on uq_entities_type_label: the insert is skipped on conflict and the
// surviving row is read back, so concurrent callers converge on one id and the stored
// color is never overwritten.
func (r *NamedEntityRepositoryImpl) FindOrCreate(ctx context.Context, e *entity.NamedEntity) (bool, error) {
	m := r.mapper.ToModel(e)
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "type"}, {Name: "label"}},
			DoNothing: true,
		}).
		Create(m)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 1 {
		*e = *r.mapper.ToEntity(m)
		return true, nil
	}

	existing, err := r.FindOne(ctx, specification.ByTypeAndLabel{Type: e.Type, Label: e.Label})
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, gorm.ErrRecordNotFound
	}
	*e = *existing
	return false, nil
}

func (r *NamedEntityRepositoryImpl) Create(ctx context.Context, e *entity.NamedEntity) error {
	m := r.mapper.ToModel(e)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*e = *r.mapper.ToEntity(m)
	return nil
}

func (r *NamedEntityRepositoryImpl) Update(ctx context.Context, e *entity.NamedEntity) error {
	m := r.mapper.ToModel(e)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*e = *r.mapper.ToEntity(m)
	return nil
}

func (r *NamedEntityRepositoryImpl) DeleteByIds(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.NamedEntity{})
	return res.RowsAffected, res.Error
}

func (r *NamedEntityRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.NamedEntity, error) {
	var m model.NamedEntity
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NamedEntityRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NamedEntity, error) {
	var models []*model.NamedEntity
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.NamedEntity{}), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NamedEntityRepositoryImpl) FindByMessageId(ctx context.Context, messageId int64) ([]*entity.NamedEntity, error) {
	var models []*model.NamedEntity
	err := r.db.WithContext(ctx).
		Model(&model.NamedEntity{}).
		Joins("JOIN note_entities ON note_entities.entity_id = entities.id").
		Where("note_entities.message_id = ?", messageId).
		Scopes(specification.ByTypeThenLabel{}.Apply).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NamedEntityRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.NamedEntity{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
