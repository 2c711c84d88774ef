package postgres

import (
	"context"

	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	"inkwell/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// The about page is a single-row document keyed by a fixed ID.
const aboutPageRowID = 1

// aboutRepository implements the domain.AboutRepository interface.
type aboutRepository struct {
	db *gorm.DB
}

// NewAboutRepository is the constructor for aboutRepository.
func NewAboutRepository(db *gorm.DB) repository.AboutRepository {
	return &aboutRepository{db: db}
}

// Get retrieves the about page. A missing row yields an empty page rather
// than an error so a fresh install renders something.
func (repo *aboutRepository) Get(ctx context.Context) (*entity.AboutPage, error) {
	var m model.AboutPageModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", aboutPageRowID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.AboutPage{}, nil
		}

		return nil, errors.WithStack(err)
	}

	return m.ToEntity(), nil
}

// Upsert writes the about page, creating the row on first save.
func (repo *aboutRepository) Upsert(ctx context.Context, page *entity.AboutPage) error {
	m := &model.AboutPageModel{
		ID:      aboutPageRowID,
		Title:   page.Title,
		Content: page.Content,
	}
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "content", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save about page")
	}

	page.UpdatedAt = m.UpdatedAt

	return nil
}
