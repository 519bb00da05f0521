package repositories

import (
	"context"
	"time"

	"github.com/acmavirus/Virtual-House/virtualhouse/database/models"
	"github.com/acmavirus/Virtual-House/virtualhouse/logger"
	"github.com/uptrace/bun"
)

type PropertyRepository interface {
	// GetByIDForOwner fetches and locks a single property, verifying
	// ownership in the same query.
	GetByIDForOwner(ctx context.Context, tx bun.IDB, id int64, ownerID string) (*models.Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Property, error)
	// ListByOwnerForUpdate locks every property of the owner for the
	// duration of the enclosing transaction, in creation order so that
	// concurrent collections acquire locks in the same sequence.
	ListByOwnerForUpdate(ctx context.Context, tx bun.IDB, ownerID string) ([]*models.Property, error)
	Insert(ctx context.Context, tx bun.IDB, property *models.Property) error
	Update(ctx context.Context, tx bun.IDB, property *models.Property) error
	Delete(ctx context.Context, tx bun.IDB, id int64) error
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

type propertyRepository struct {
	*BaseRepository
	db *bun.DB
}

func NewPropertyRepository(db *bun.DB) PropertyRepository {
	return &propertyRepository{
		BaseRepository: NewBaseRepository(),
		db:             db,
	}
}

func (r *propertyRepository) GetByIDForOwner(ctx context.Context, tx bun.IDB, id int64, ownerID string) (*models.Property, error) {
	property := new(models.Property)
	err := tx.NewSelect().
		Model(property).
		Where("id = ?", id).
		Where("owner_id = ?", ownerID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get_for_owner", "property", id, err)
	}
	return property, nil
}

func (r *propertyRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Property, error) {
	start := time.Now()
	var properties []*models.Property
	err := r.db.NewSelect().
		Model(&properties).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Scan(ctx)
	logger.LogQuery("properties list_by_owner", time.Since(start), err)
	if err != nil {
		return nil, r.HandleError("list_by_owner", "property", err)
	}
	return properties, nil
}

func (r *propertyRepository) ListByOwnerForUpdate(ctx context.Context, tx bun.IDB, ownerID string) ([]*models.Property, error) {
	var properties []*models.Property
	err := tx.NewSelect().
		Model(&properties).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list_for_update", "property", err)
	}
	return properties, nil
}

func (r *propertyRepository) Insert(ctx context.Context, tx bun.IDB, property *models.Property) error {
	_, err := tx.NewInsert().
		Model(property).
		Returning("id").
		Exec(ctx)
	return r.HandleError("insert", "property", err)
}

func (r *propertyRepository) Update(ctx context.Context, tx bun.IDB, property *models.Property) error {
	_, err := tx.NewUpdate().
		Model(property).
		WherePK().
		Exec(ctx)
	return r.HandleErrorWithID("update", "property", property.ID, err)
}

func (r *propertyRepository) Delete(ctx context.Context, tx bun.IDB, id int64) error {
	_, err := tx.NewDelete().
		Model((*models.Property)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return r.HandleErrorWithID("delete", "property", id, err)
}

func (r *propertyRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	count, err := r.db.NewSelect().
		Model((*models.Property)(nil)).
		Where("owner_id = ?", ownerID).
		Count(ctx)
	if err != nil {
		return 0, r.HandleError("count_by_owner", "property", err)
	}
	return count, nil
}
