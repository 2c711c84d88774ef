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

// Site settings is a single-row document keyed by a fixed ID.
const siteSettingsRowID = 1

// settingsRepository implements the domain.SettingsRepository interface.
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository is the constructor for settingsRepository.
func NewSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get retrieves the shop settings. A missing row yields empty settings.
func (repo *settingsRepository) Get(ctx context.Context) (*entity.SiteSettings, error) {
	var m model.SiteSettingsModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", siteSettingsRowID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.SiteSettings{}, nil
		}

		return nil, errors.WithStack(err)
	}

	return m.ToEntity(), nil
}

// Upsert writes the shop settings, creating the row on first save.
func (repo *settingsRepository) Upsert(ctx context.Context, settings *entity.SiteSettings) error {
	m := &model.SiteSettingsModel{
		ID:           siteSettingsRowID,
		ShopName:     settings.ShopName,
		Currency:     settings.Currency,
		ContactEmail: settings.ContactEmail,
		Banner:       settings.Banner,
	}
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"shop_name", "currency", "contact_email", "banner", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save site settings")
	}

	settings.UpdatedAt = m.UpdatedAt

	return nil
}
