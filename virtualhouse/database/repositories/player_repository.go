package repositories

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/acmavirus/Virtual-House/virtualhouse/database/models"
	"github.com/acmavirus/Virtual-House/virtualhouse/logger"
	"github.com/uptrace/bun"
)

type PlayerRepository interface {
	GetByID(ctx context.Context, id string) (*models.Player, error)
	Create(ctx context.Context, player *models.Player) error
	// GetOrCreate returns the player record, inserting a zero-state record
	// if none exists. The bool reports whether the record was freshly
	// created. Safe under concurrent first contact.
	GetOrCreate(ctx context.Context, id string) (*models.Player, bool, error)
	// GetForUpdate locks the player row for the duration of the enclosing
	// transaction, serializing concurrent ledger operations per player.
	GetForUpdate(ctx context.Context, tx bun.IDB, id string) (*models.Player, error)
	Update(ctx context.Context, tx bun.IDB, player *models.Player) error
	GetTopByBalance(ctx context.Context, limit int) ([]*models.Player, error)
}

type playerRepository struct {
	*BaseRepository
	db *bun.DB
}

func NewPlayerRepository(db *bun.DB) PlayerRepository {
	return &playerRepository{
		BaseRepository: NewBaseRepository(),
		db:             db,
	}
}

func (r *playerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	player := new(models.Player)
	err := r.db.NewSelect().
		Model(player).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "player", id, err)
	}
	return player, nil
}

func (r *playerRepository) Create(ctx context.Context, player *models.Player) error {
	now := time.Now()
	player.CreatedAt = now
	player.UpdatedAt = now
	_, err := r.db.NewInsert().Model(player).Exec(ctx)
	return r.HandleErrorWithID("create", "player", player.ID, err)
}

func (r *playerRepository) GetOrCreate(ctx context.Context, id string) (*models.Player, bool, error) {
	player, err := r.GetByID(ctx, id)
	if err == nil {
		return player, false, nil
	}
	if !IsNotFound(err) {
		return nil, false, err
	}

	now := time.Now()
	fresh := &models.Player{
		ID:        id,
		Balance:   0,
		Level:     1,
		Exp:       0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := r.db.NewInsert().
		Model(fresh).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, false, r.HandleErrorWithID("get_or_create", "player", id, err)
	}

	// Another worker may have won the insert race; re-read in that case.
	if rows, _ := res.RowsAffected(); rows == 0 {
		player, err = r.GetByID(ctx, id)
		return player, false, err
	}

	slog.Debug("Created new player",
		slog.String("type", "db"),
		slog.String("player_id", id))
	return fresh, true, nil
}

func (r *playerRepository) GetForUpdate(ctx context.Context, tx bun.IDB, id string) (*models.Player, error) {
	player := new(models.Player)
	err := tx.NewSelect().
		Model(player).
		Where("id = ?", id).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Warn("Player not found for update",
				slog.String("type", "db"),
				slog.String("player_id", id))
		}
		return nil, r.HandleErrorWithID("get_for_update", "player", id, err)
	}
	return player, nil
}

func (r *playerRepository) Update(ctx context.Context, tx bun.IDB, player *models.Player) error {
	player.UpdatedAt = time.Now()
	_, err := tx.NewUpdate().
		Model(player).
		WherePK().
		Exec(ctx)
	return r.HandleErrorWithID("update", "player", player.ID, err)
}

func (r *playerRepository) GetTopByBalance(ctx context.Context, limit int) ([]*models.Player, error) {
	start := time.Now()
	var players []*models.Player
	err := r.db.NewSelect().
		Model(&players).
		Order("balance DESC").
		Limit(limit).
		Scan(ctx)
	logger.LogQuery("players top_by_balance", time.Since(start), err)
	if err != nil {
		return nil, r.HandleError("top_by_balance", "player", err)
	}
	return players, nil
}
