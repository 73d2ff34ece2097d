package repository

import (
	"context"

	"gorm.io/gorm"

	"recipebook/internal/domain"
)

type TagRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
	Create(ctx context.Context, t *domain.Tag) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	var t domain.Tag
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tagRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error) {
	var out []domain.Tag
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func (r *tagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	var out []domain.Tag
	err := r.db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}

func (r *tagRepository) Create(ctx context.Context, t *domain.Tag) error {
	return r.db.WithContext(ctx).Create(t).Error
}
