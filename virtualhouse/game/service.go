package game

import (
	"context"
	"fmt"
	"math"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/acmavirus/Virtual-House/virtualhouse/config"
	"github.com/acmavirus/Virtual-House/virtualhouse/database/models"
	"github.com/acmavirus/Virtual-House/virtualhouse/database/repositories"
	"github.com/uptrace/bun"
)

// TxRunner is the single scoped-transaction abstraction shared by all
// ledger operations. The implementation must roll back on any error or
// panic raised by fn. *database.DB satisfies it.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error
}

// Service implements the ledger operations: atomic, validated state
// transitions over player and property records. It is stateless between
// invocations and safe to run across many workers against one shared
// store; per-player serialization comes from row locks taken inside each
// transaction.
type Service struct {
	tx      TxRunner
	players repositories.PlayerRepository
	props   repositories.PropertyRepository

	mu   sync.Mutex
	rand *mathrand.Rand
	now  func() time.Time
}

// Option customizes a Service, mainly for tests.
type Option func(*Service)

// WithRand replaces the randomness source.
func WithRand(r *mathrand.Rand) Option {
	return func(s *Service) { s.rand = r }
}

// WithClock replaces the wall-clock source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(tx TxRunner, players repositories.PlayerRepository, props repositories.PropertyRepository, opts ...Option) *Service {
	s := &Service{
		tx:      tx,
		players: players,
		props:   props,
		rand:    mathrand.New(mathrand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) randIntn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Intn(n)
}

func (s *Service) randFloat() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Float64()
}

// EnsurePlayer is the idempotent get-or-create entry point. The bool
// signals a freshly created record so callers can fire onboarding side
// effects.
func (s *Service) EnsurePlayer(ctx context.Context, playerID string) (*models.Player, bool, error) {
	return s.players.GetOrCreate(ctx, playerID)
}

// GetPlayer returns the current player record without creating one.
func (s *Service) GetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	return s.players.GetByID(ctx, playerID)
}

// ListProperties returns the player's portfolio, newest first.
func (s *Service) ListProperties(ctx context.Context, playerID string) ([]*models.Property, error) {
	return s.props.ListByOwner(ctx, playerID)
}

// WorkResult reports the outcome of a Work operation. A cooldown is a
// normal outcome, not an error.
type WorkResult struct {
	OnCooldown   bool
	Remaining    int64 // whole seconds left, ceiling of the deficit
	Earned       int64
	ExpGain      int64
	LeveledUp    bool
	CurrentLevel int
}

// Work credits a random amount in [50,150] and grants level-scaled
// experience, gated by a 4 second cooldown.
func (s *Service) Work(ctx context.Context, playerID string) (*WorkResult, error) {
	if _, _, err := s.players.GetOrCreate(ctx, playerID); err != nil {
		return nil, fmt.Errorf("work: %w", err)
	}

	var res WorkResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		player, err := s.players.GetForUpdate(ctx, tx, playerID)
		if err != nil {
			return err
		}

		now := s.now()
		if player.LastWorkTime != nil {
			elapsed := now.Sub(*player.LastWorkTime).Seconds()
			if wait := config.WorkCooldown.Seconds() - elapsed; wait > 0 {
				res = WorkResult{
					OnCooldown:   true,
					Remaining:    int64(math.Ceil(wait)),
					CurrentLevel: player.Level,
				}
				return nil
			}
		}

		earned := int64(config.WorkEarnMin + s.randIntn(config.WorkEarnMax-config.WorkEarnMin+1))
		expGain := WorkExp(player.Level)
		newLevel, newExp, gained := ApplyExp(player.Level, player.Exp, expGain)

		player.Balance += earned
		player.Level = newLevel
		player.Exp = newExp
		player.LastWorkTime = &now
		if err := s.players.Update(ctx, tx, player); err != nil {
			return err
		}

		res = WorkResult{
			Earned:       earned,
			ExpGain:      expGain,
			LeveledUp:    gained > 0,
			CurrentLevel: newLevel,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("work: %w", err)
	}
	return &res, nil
}

// BuyResult reports a successful land purchase.
type BuyResult struct {
	PropertyID int64
	Land       Land
	IsGold     bool
	ExpGain    int64
}

// BuyLand debits the catalog price, inserts a fresh property, and grants
// price-scaled experience. The gold rarity roll is independent per
// purchase.
func (s *Service) BuyLand(ctx context.Context, playerID, landKey string) (*BuyResult, error) {
	land, ok := LookupLand(landKey)
	if !ok {
		return nil, ErrInvalidLandType
	}

	if _, _, err := s.players.GetOrCreate(ctx, playerID); err != nil {
		return nil, fmt.Errorf("buy land: %w", err)
	}

	isGold := s.randFloat() < config.GoldLandChance

	var res BuyResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		player, err := s.players.GetForUpdate(ctx, tx, playerID)
		if err != nil {
			return err
		}
		if player.Balance < land.Price {
			return &InsufficientBalanceError{Need: land.Price}
		}

		expGain := BuyExp(land.Price)
		newLevel, newExp, _ := ApplyExp(player.Level, player.Exp, expGain)

		player.Balance -= land.Price
		player.Level = newLevel
		player.Exp = newExp
		if err := s.players.Update(ctx, tx, player); err != nil {
			return err
		}

		now := s.now()
		property := &models.Property{
			OwnerID:         playerID,
			LandType:        landKey,
			Level:           1,
			Condition:       100,
			IsGold:          isGold,
			LastCollectTime: now,
			CreatedAt:       now,
		}
		if err := s.props.Insert(ctx, tx, property); err != nil {
			return err
		}

		res = BuyResult{
			PropertyID: property.ID,
			Land:       land,
			IsGold:     isGold,
			ExpGain:    expGain,
		}
		return nil
	})
	if err != nil {
		if IsValidation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("buy land: %w", err)
	}
	return &res, nil
}

// CollectResult reports a rent collection over the whole portfolio.
type CollectResult struct {
	Total   int64
	Count   int
	ExpGain int64
}

// CollectRent sums the pending accrual of every owned property and, if
// positive, credits the total, resets every accrual window, and wears
// every property down by 5 condition points, all in one transaction. A
// zero total mutates nothing. A first-contact player is created on the
// spot and reports zeros.
func (s *Service) CollectRent(ctx context.Context, playerID string) (*CollectResult, error) {
	if _, _, err := s.players.GetOrCreate(ctx, playerID); err != nil {
		return nil, fmt.Errorf("collect rent: %w", err)
	}

	var res CollectResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		player, err := s.players.GetForUpdate(ctx, tx, playerID)
		if err != nil {
			return err
		}

		properties, err := s.props.ListByOwnerForUpdate(ctx, tx, playerID)
		if err != nil {
			return err
		}
		res.Count = len(properties)
		if len(properties) == 0 {
			return nil
		}

		now := s.now()
		var total int64
		for _, p := range properties {
			total += PendingRent(p, now)
		}
		if total <= 0 {
			return nil
		}

		expGain := total / config.CollectExpDivisor
		newLevel, newExp, _ := ApplyExp(player.Level, player.Exp, expGain)

		player.Balance += total
		player.Level = newLevel
		player.Exp = newExp
		if err := s.players.Update(ctx, tx, player); err != nil {
			return err
		}

		for _, p := range properties {
			p.LastCollectTime = now
			p.Condition = wearDown(p.Condition)
			if err := s.props.Update(ctx, tx, p); err != nil {
				return err
			}
		}

		res.Total = total
		res.ExpGain = expGain
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect rent: %w", err)
	}
	return &res, nil
}

// UpgradeResult reports a successful property upgrade.
type UpgradeResult struct {
	Cost     int64
	Earned   int64 // pending rent collected as part of the upgrade
	NewLevel int
	ExpGain  int64
}

// UpgradeProperty raises the property level by one, bundling an implicit
// collection of that property's pending rent into the same transaction.
// Affordability is checked against the pre-collection balance; the
// about-to-be-collected rent does not count toward the upgrade cost.
func (s *Service) UpgradeProperty(ctx context.Context, playerID string, propertyID int64) (*UpgradeResult, error) {
	if _, _, err := s.players.GetOrCreate(ctx, playerID); err != nil {
		return nil, fmt.Errorf("upgrade property: %w", err)
	}

	var res UpgradeResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		player, err := s.players.GetForUpdate(ctx, tx, playerID)
		if err != nil {
			return err
		}

		property, err := s.props.GetByIDForOwner(ctx, tx, propertyID, playerID)
		if err != nil {
			if repositories.IsNotFound(err) {
				return ErrPropertyNotFound
			}
			return err
		}

		land, ok := LookupLand(property.LandType)
		if !ok {
			return ErrInvalidLandType
		}

		cost := UpgradeCost(land, property.Level)
		if player.Balance < cost {
			return &InsufficientBalanceError{Need: cost}
		}

		now := s.now()
		pending := PendingRent(property, now)
		expGain := UpgradeExp(cost)
		newLevel, newExp, _ := ApplyExp(player.Level, player.Exp, expGain)

		player.Balance += pending - cost
		player.Level = newLevel
		player.Exp = newExp
		if err := s.players.Update(ctx, tx, player); err != nil {
			return err
		}

		property.Level++
		property.LastCollectTime = now
		property.Condition = wearDown(property.Condition)
		if err := s.props.Update(ctx, tx, property); err != nil {
			return err
		}

		res = UpgradeResult{
			Cost:     cost,
			Earned:   pending,
			NewLevel: property.Level,
			ExpGain:  expGain,
		}
		return nil
	})
	if err != nil {
		if IsValidation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("upgrade property: %w", err)
	}
	return &res, nil
}

// RepairResult reports a successful repair.
type RepairResult struct {
	Cost    int64
	ExpGain int64
}

// RepairProperty restores condition to 100 for a per-point fee.
func (s *Service) RepairProperty(ctx context.Context, playerID string, propertyID int64) (*RepairResult, error) {
	if _, _, err := s.players.GetOrCreate(ctx, playerID); err != nil {
		return nil, fmt.Errorf("repair property: %w", err)
	}

	var res RepairResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		player, err := s.players.GetForUpdate(ctx, tx, playerID)
		if err != nil {
			return err
		}

		property, err := s.props.GetByIDForOwner(ctx, tx, propertyID, playerID)
		if err != nil {
			if repositories.IsNotFound(err) {
				return ErrPropertyNotFound
			}
			return err
		}
		if property.Condition >= 100 {
			return ErrAlreadyRepaired
		}

		cost := RepairCost(property.Condition)
		if player.Balance < cost {
			return &InsufficientBalanceError{Need: cost}
		}

		newLevel, newExp, _ := ApplyExp(player.Level, player.Exp, config.RepairExp)

		player.Balance -= cost
		player.Level = newLevel
		player.Exp = newExp
		if err := s.players.Update(ctx, tx, player); err != nil {
			return err
		}

		property.Condition = 100
		if err := s.props.Update(ctx, tx, property); err != nil {
			return err
		}

		res = RepairResult{Cost: cost, ExpGain: config.RepairExp}
		return nil
	})
	if err != nil {
		if IsValidation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("repair property: %w", err)
	}
	return &res, nil
}

// SellResult reports a successful sale.
type SellResult struct {
	Refund   int64
	LandName string
	ExpGain  int64
}

// SellProperty credits 75% of the purchase price and removes the property.
// Any uncollected rent on it is forfeited; the sale does not auto-collect.
func (s *Service) SellProperty(ctx context.Context, playerID string, propertyID int64) (*SellResult, error) {
	if _, _, err := s.players.GetOrCreate(ctx, playerID); err != nil {
		return nil, fmt.Errorf("sell property: %w", err)
	}

	var res SellResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		player, err := s.players.GetForUpdate(ctx, tx, playerID)
		if err != nil {
			return err
		}

		property, err := s.props.GetByIDForOwner(ctx, tx, propertyID, playerID)
		if err != nil {
			if repositories.IsNotFound(err) {
				return ErrPropertyNotFound
			}
			return err
		}

		land, ok := LookupLand(property.LandType)
		if !ok {
			return ErrInvalidLandType
		}

		refund := SellRefund(land)
		newLevel, newExp, _ := ApplyExp(player.Level, player.Exp, config.SellExp)

		player.Balance += refund
		player.Level = newLevel
		player.Exp = newExp
		if err := s.players.Update(ctx, tx, player); err != nil {
			return err
		}

		if err := s.props.Delete(ctx, tx, property.ID); err != nil {
			return err
		}

		res = SellResult{Refund: refund, LandName: land.Name, ExpGain: config.SellExp}
		return nil
	})
	if err != nil {
		if IsValidation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("sell property: %w", err)
	}
	return &res, nil
}
