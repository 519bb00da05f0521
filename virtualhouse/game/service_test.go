package game

import (
	"context"
	"errors"
	mathrand "math/rand"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/acmavirus/Virtual-House/virtualhouse/database/models"
	"github.com/acmavirus/Virtual-House/virtualhouse/database/repositories"
	"github.com/uptrace/bun"
)

// The fakes emulate the store's transactional contract: reads hand out
// copies, only Update/Insert/Delete write back. An operation that fails
// before its writes therefore leaves the fake untouched, which is exactly
// what the snapshot assertions below rely on.

type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(ctx context.Context, fn func(context.Context, bun.Tx) error) error {
	return fn(ctx, bun.Tx{})
}

type fakePlayerRepo struct {
	players map[string]*models.Player
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[string]*models.Player)}
}

func (f *fakePlayerRepo) GetByID(_ context.Context, id string) (*models.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return nil, &repositories.NotFoundError{Entity: "player", ID: id}
	}
	c := *p
	return &c, nil
}

func (f *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	c := *player
	f.players[player.ID] = &c
	return nil
}

func (f *fakePlayerRepo) GetOrCreate(ctx context.Context, id string) (*models.Player, bool, error) {
	if p, ok := f.players[id]; ok {
		c := *p
		return &c, false, nil
	}
	fresh := &models.Player{ID: id, Balance: 0, Level: 1, Exp: 0}
	f.players[id] = fresh
	c := *fresh
	return &c, true, nil
}

func (f *fakePlayerRepo) GetForUpdate(ctx context.Context, _ bun.IDB, id string) (*models.Player, error) {
	return f.GetByID(ctx, id)
}

func (f *fakePlayerRepo) Update(_ context.Context, _ bun.IDB, player *models.Player) error {
	if _, ok := f.players[player.ID]; !ok {
		return &repositories.NotFoundError{Entity: "player", ID: player.ID}
	}
	c := *player
	f.players[player.ID] = &c
	return nil
}

func (f *fakePlayerRepo) GetTopByBalance(_ context.Context, limit int) ([]*models.Player, error) {
	var out []*models.Player
	for _, p := range f.players {
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Balance > out[j].Balance })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakePropertyRepo struct {
	props  map[int64]*models.Property
	nextID int64
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{props: make(map[int64]*models.Property)}
}

func (f *fakePropertyRepo) GetByIDForOwner(_ context.Context, _ bun.IDB, id int64, ownerID string) (*models.Property, error) {
	p, ok := f.props[id]
	if !ok || p.OwnerID != ownerID {
		return nil, &repositories.NotFoundError{Entity: "property", ID: id}
	}
	c := *p
	return &c, nil
}

func (f *fakePropertyRepo) ListByOwner(_ context.Context, ownerID string) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range f.props {
		if p.OwnerID == ownerID {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakePropertyRepo) ListByOwnerForUpdate(_ context.Context, _ bun.IDB, ownerID string) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range f.props {
		if p.OwnerID == ownerID {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePropertyRepo) Insert(_ context.Context, _ bun.IDB, property *models.Property) error {
	f.nextID++
	property.ID = f.nextID
	c := *property
	f.props[c.ID] = &c
	return nil
}

func (f *fakePropertyRepo) Update(_ context.Context, _ bun.IDB, property *models.Property) error {
	if _, ok := f.props[property.ID]; !ok {
		return &repositories.NotFoundError{Entity: "property", ID: property.ID}
	}
	c := *property
	f.props[c.ID] = &c
	return nil
}

func (f *fakePropertyRepo) Delete(_ context.Context, _ bun.IDB, id int64) error {
	delete(f.props, id)
	return nil
}

func (f *fakePropertyRepo) CountByOwner(_ context.Context, ownerID string) (int, error) {
	n := 0
	for _, p := range f.props {
		if p.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

type testEnv struct {
	svc     *Service
	players *fakePlayerRepo
	props   *fakePropertyRepo
	clock   *time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	players := newFakePlayerRepo()
	props := newFakePropertyRepo()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(fakeTxRunner{}, players, props,
		WithClock(func() time.Time { return now }),
		WithRand(mathrand.New(mathrand.NewSource(42))),
	)
	return &testEnv{svc: svc, players: players, props: props, clock: &now}
}

func (e *testEnv) seedPlayer(id string, balance int64) {
	e.players.players[id] = &models.Player{ID: id, Balance: balance, Level: 1, Exp: 0}
}

func (e *testEnv) seedProperty(owner string, landType LandType, level, condition int, lastCollect time.Time) int64 {
	e.props.nextID++
	id := e.props.nextID
	e.props.props[id] = &models.Property{
		ID:              id,
		OwnerID:         owner,
		LandType:        string(landType),
		Level:           level,
		Condition:       condition,
		LastCollectTime: lastCollect,
		CreatedAt:       lastCollect,
	}
	return id
}

func (e *testEnv) snapshot(id string) models.Player {
	return *e.players.players[id]
}

func TestEnsurePlayerIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, created, err := env.svc.EnsurePlayer(ctx, "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("first contact must report a freshly created record")
	}
	if first.Balance != 0 || first.Level != 1 || first.Exp != 0 {
		t.Fatalf("fresh player has non-zero state: %+v", first)
	}

	second, created, err := env.svc.EnsurePlayer(ctx, "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatal("second contact must not report creation")
	}
	if second.ID != first.ID {
		t.Fatalf("got a different record back: %q vs %q", second.ID, first.ID)
	}
}

func TestWorkFirstTime(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.svc.Work(context.Background(), "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OnCooldown {
		t.Fatal("first work must not hit the cooldown")
	}
	if res.Earned < 50 || res.Earned > 150 {
		t.Errorf("earned %d outside [50,150]", res.Earned)
	}
	if res.ExpGain != 12 {
		t.Errorf("exp gain = %d, want 10 + 1*2 = 12", res.ExpGain)
	}
	if res.LeveledUp {
		t.Error("12 exp must not cross the 100 exp threshold")
	}

	player := env.snapshot("123")
	if player.Balance != res.Earned {
		t.Errorf("balance = %d, want %d", player.Balance, res.Earned)
	}
	if player.Exp != 12 || player.Level != 1 {
		t.Errorf("player state = level %d exp %d, want level 1 exp 12", player.Level, player.Exp)
	}
	if player.LastWorkTime == nil || !player.LastWorkTime.Equal(*env.clock) {
		t.Error("last work time not stamped")
	}
}

func TestWorkCooldown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.Work(ctx, "123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := env.snapshot("123")

	*env.clock = env.clock.Add(1 * time.Second)
	res, err := env.svc.Work(ctx, "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.OnCooldown {
		t.Fatal("second work within 4s must be on cooldown")
	}
	if res.Remaining != 3 {
		t.Errorf("remaining = %d, want ceil(4-1) = 3", res.Remaining)
	}
	if after := env.snapshot("123"); !reflect.DeepEqual(before, after) {
		t.Errorf("cooldown mutated state: before %+v after %+v", before, after)
	}

	*env.clock = env.clock.Add(4 * time.Second)
	res, err = env.svc.Work(ctx, "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OnCooldown {
		t.Error("work after the cooldown elapsed must succeed")
	}
}

func TestBuyLand(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayer("123", 10000)

	res, err := env.svc.BuyLand(context.Background(), "123", "prime_location")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExpGain != 100 {
		t.Errorf("exp gain = %d, want clamp(10000/100, 50, 500) = 100", res.ExpGain)
	}

	player := env.snapshot("123")
	if player.Balance != 0 {
		t.Errorf("balance = %d, want 0", player.Balance)
	}
	// 100 exp is exactly the level 1 threshold
	if player.Level != 2 || player.Exp != 0 {
		t.Errorf("player = level %d exp %d, want level 2 exp 0", player.Level, player.Exp)
	}

	property := env.props.props[res.PropertyID]
	if property == nil {
		t.Fatal("property was not inserted")
	}
	if property.Level != 1 || property.Condition != 100 {
		t.Errorf("property = level %d condition %d, want level 1 condition 100", property.Level, property.Condition)
	}
	if !property.LastCollectTime.Equal(*env.clock) {
		t.Error("accrual window must start at purchase time")
	}
	if property.IsGold != res.IsGold {
		t.Error("result and stored rarity flag disagree")
	}
}

func TestBuyLandInsufficientBalance(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayer("123", 400)
	before := env.snapshot("123")

	_, err := env.svc.BuyLand(context.Background(), "123", "empty_lot")
	var ibe *InsufficientBalanceError
	if !errors.As(err, &ibe) {
		t.Fatalf("want InsufficientBalanceError, got %v", err)
	}
	if ibe.Need != 500 {
		t.Errorf("needed = %d, want 500", ibe.Need)
	}
	if after := env.snapshot("123"); !reflect.DeepEqual(before, after) {
		t.Errorf("failed buy mutated state: before %+v after %+v", before, after)
	}
	if n, _ := env.props.CountByOwner(context.Background(), "123"); n != 0 {
		t.Errorf("failed buy inserted %d properties", n)
	}
}

func TestBuyLandInvalidType(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayer("123", 1000000)

	_, err := env.svc.BuyLand(context.Background(), "123", "volcano_fortress")
	if !errors.Is(err, ErrInvalidLandType) {
		t.Fatalf("want ErrInvalidLandType, got %v", err)
	}
}

func TestCollectRent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedPlayer("123", 0)
	start := *env.clock
	env.seedProperty("123", LandSuburbs, 1, 100, start)
	env.seedProperty("123", LandSuburbs, 1, 100, start)

	*env.clock = start.Add(100 * time.Second)
	res, err := env.svc.CollectRent(ctx, "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Count != 2 || res.Total != 100 {
		t.Fatalf("collect = total %d count %d, want total 100 count 2", res.Total, res.Count)
	}
	if res.ExpGain != 0 {
		t.Errorf("exp gain = %d, want 100/1000 = 0", res.ExpGain)
	}

	player := env.snapshot("123")
	if player.Balance != 100 {
		t.Errorf("balance = %d, want 100", player.Balance)
	}
	for id, p := range env.props.props {
		if p.Condition != 95 {
			t.Errorf("property %d condition = %d, want 95", id, p.Condition)
		}
		if !p.LastCollectTime.Equal(*env.clock) {
			t.Errorf("property %d window not reset", id)
		}
	}

	// Immediate second collection finds empty windows and must not write.
	before := env.snapshot("123")
	res, err = env.svc.CollectRent(ctx, "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 0 || res.Count != 2 {
		t.Errorf("second collect = total %d count %d, want total 0 count 2", res.Total, res.Count)
	}
	if after := env.snapshot("123"); !reflect.DeepEqual(before, after) {
		t.Error("zero-total collect mutated player state")
	}
	for id, p := range env.props.props {
		if p.Condition != 95 {
			t.Errorf("zero-total collect wore property %d down to %d", id, p.Condition)
		}
	}
}

func TestCollectRentNoProperties(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayer("123", 500)

	res, err := env.svc.CollectRent(context.Background(), "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 0 || res.Count != 0 {
		t.Errorf("collect = total %d count %d, want zeros", res.Total, res.Count)
	}
}

// Wear from collection bottoms out at condition 0 and never goes negative.
func TestCollectRentWearFloor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedPlayer("123", 0)
	start := *env.clock
	lowID := env.seedProperty("123", LandSuburbs, 1, 3, start)
	deadID := env.seedProperty("123", LandSuburbs, 1, 0, start)
	freshID := env.seedProperty("123", LandSuburbs, 1, 100, start)

	*env.clock = start.Add(100 * time.Second)
	res, err := env.svc.CollectRent(ctx, "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// suburbs at 100s: condition 3 -> 1, condition 0 -> 0, condition 100 -> 50
	if res.Total != 51 {
		t.Errorf("total = %d, want 51", res.Total)
	}

	if got := env.props.props[lowID].Condition; got != 0 {
		t.Errorf("condition 3 after wear = %d, want floor at 0", got)
	}
	if got := env.props.props[deadID].Condition; got != 0 {
		t.Errorf("condition 0 after wear = %d, want 0", got)
	}
	if got := env.props.props[freshID].Condition; got != 95 {
		t.Errorf("condition 100 after wear = %d, want 95", got)
	}

	// A ruined property accrues nothing but its window still resets.
	if !env.props.props[deadID].LastCollectTime.Equal(*env.clock) {
		t.Error("ruined property window not reset")
	}
}

// A collect from a player with no record yet must create the record and
// report zeros, not surface a store failure.
func TestCollectRentFirstContact(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.svc.CollectRent(context.Background(), "999")
	if err != nil {
		t.Fatalf("first-contact collect errored: %v", err)
	}
	if res.Total != 0 || res.Count != 0 {
		t.Errorf("collect = total %d count %d, want zeros", res.Total, res.Count)
	}
	player, ok := env.players.players["999"]
	if !ok {
		t.Fatal("first-contact collect did not create the player record")
	}
	if player.Balance != 0 || player.Level != 1 || player.Exp != 0 {
		t.Errorf("fresh player has non-zero state: %+v", player)
	}
}

// Property operations from a player with no record yet create the record
// and fail with the property validation error, never a store failure.
func TestPropertyOpsFirstContact(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ops := []struct {
		name string
		call func(id string) error
	}{
		{"upgrade", func(id string) error {
			_, err := env.svc.UpgradeProperty(ctx, id, 1)
			return err
		}},
		{"repair", func(id string) error {
			_, err := env.svc.RepairProperty(ctx, id, 1)
			return err
		}},
		{"sell", func(id string) error {
			_, err := env.svc.SellProperty(ctx, id, 1)
			return err
		}},
	}
	for i, op := range ops {
		id := string(rune('a' + i))
		if err := op.call(id); !errors.Is(err, ErrPropertyNotFound) {
			t.Errorf("%s: want ErrPropertyNotFound, got %v", op.name, err)
		}
		if _, ok := env.players.players[id]; !ok {
			t.Errorf("%s: player record not created on first contact", op.name)
		}
	}
}

func TestUpgradeProperty(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayer("123", 1300)
	start := *env.clock
	id := env.seedProperty("123", LandSuburbs, 1, 100, start)

	*env.clock = start.Add(100 * time.Second)
	res, err := env.svc.UpgradeProperty(context.Background(), "123", id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Cost != 1250 {
		t.Errorf("cost = %d, want floor(2500*0.5*1) = 1250", res.Cost)
	}
	if res.Earned != 50 {
		t.Errorf("bundled rent = %d, want 50", res.Earned)
	}
	if res.NewLevel != 2 {
		t.Errorf("new level = %d, want 2", res.NewLevel)
	}
	if res.ExpGain != 50 {
		t.Errorf("exp gain = %d, want clamp(1250/50, 50, 500) = 50", res.ExpGain)
	}

	player := env.snapshot("123")
	if want := int64(1300 + 50 - 1250); player.Balance != want {
		t.Errorf("balance = %d, want %d", player.Balance, want)
	}

	property := env.props.props[id]
	if property.Level != 2 || property.Condition != 95 {
		t.Errorf("property = level %d condition %d, want level 2 condition 95", property.Level, property.Condition)
	}
	if !property.LastCollectTime.Equal(*env.clock) {
		t.Error("upgrade must reset the accrual window")
	}
}

// Affordability is judged on the balance before the bundled collection:
// pending rent that would cover the cost does not count.
func TestUpgradePendingRentDoesNotCoverCost(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayer("123", 1200)
	start := *env.clock
	id := env.seedProperty("123", LandSuburbs, 1, 100, start)
	before := env.snapshot("123")

	*env.clock = start.Add(200 * time.Second) // pending 100, 1200+100 >= 1250
	_, err := env.svc.UpgradeProperty(context.Background(), "123", id)
	var ibe *InsufficientBalanceError
	if !errors.As(err, &ibe) {
		t.Fatalf("want InsufficientBalanceError, got %v", err)
	}
	if after := env.snapshot("123"); !reflect.DeepEqual(before, after) {
		t.Error("failed upgrade mutated player state")
	}
	if p := env.props.props[id]; p.Level != 1 || p.Condition != 100 || !p.LastCollectTime.Equal(start) {
		t.Errorf("failed upgrade mutated property: %+v", p)
	}
}

func TestUpgradePropertyNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayer("123", 100000)
	otherID := env.seedProperty("456", LandSuburbs, 1, 100, *env.clock)

	if _, err := env.svc.UpgradeProperty(context.Background(), "123", 999); !errors.Is(err, ErrPropertyNotFound) {
		t.Fatalf("want ErrPropertyNotFound for missing id, got %v", err)
	}
	// Another player's property must look identical to a missing one.
	if _, err := env.svc.UpgradeProperty(context.Background(), "123", otherID); !errors.Is(err, ErrPropertyNotFound) {
		t.Fatalf("want ErrPropertyNotFound for foreign property, got %v", err)
	}
}

func TestRepairProperty(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayer("123", 1000)
	id := env.seedProperty("123", LandEmptyLot, 1, 95, *env.clock)

	res, err := env.svc.RepairProperty(context.Background(), "123", id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Cost != 50 {
		t.Errorf("cost = %d, want (100-95)*10 = 50", res.Cost)
	}
	if res.ExpGain != 10 {
		t.Errorf("exp gain = %d, want 10", res.ExpGain)
	}

	player := env.snapshot("123")
	if player.Balance != 950 {
		t.Errorf("balance = %d, want 950", player.Balance)
	}
	if p := env.props.props[id]; p.Condition != 100 {
		t.Errorf("condition = %d, want 100", p.Condition)
	}
}

func TestRepairPropertyAtFullCondition(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayer("123", 1000)
	id := env.seedProperty("123", LandEmptyLot, 1, 100, *env.clock)
	before := env.snapshot("123")

	_, err := env.svc.RepairProperty(context.Background(), "123", id)
	if !errors.Is(err, ErrAlreadyRepaired) {
		t.Fatalf("want ErrAlreadyRepaired, got %v", err)
	}
	if after := env.snapshot("123"); !reflect.DeepEqual(before, after) {
		t.Error("rejected repair mutated player state")
	}
}

func TestRepairPropertyInsufficientBalance(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayer("123", 40)
	id := env.seedProperty("123", LandEmptyLot, 1, 95, *env.clock)
	before := env.snapshot("123")

	_, err := env.svc.RepairProperty(context.Background(), "123", id)
	var ibe *InsufficientBalanceError
	if !errors.As(err, &ibe) {
		t.Fatalf("want InsufficientBalanceError, got %v", err)
	}
	if after := env.snapshot("123"); !reflect.DeepEqual(before, after) {
		t.Error("failed repair mutated player state")
	}
	if p := env.props.props[id]; p.Condition != 95 {
		t.Errorf("failed repair changed condition to %d", p.Condition)
	}
}

func TestSellProperty(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayer("123", 0)
	start := *env.clock
	id := env.seedProperty("123", LandSuburbs, 3, 80, start)

	// A long uncollected window: the sale must forfeit it.
	*env.clock = start.Add(time.Hour)
	res, err := env.svc.SellProperty(context.Background(), "123", id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Refund != 1875 {
		t.Errorf("refund = %d, want floor(2500*0.75) = 1875", res.Refund)
	}
	if res.LandName != "Suburbs" {
		t.Errorf("land name = %q, want Suburbs", res.LandName)
	}
	if res.ExpGain != 50 {
		t.Errorf("exp gain = %d, want 50", res.ExpGain)
	}

	player := env.snapshot("123")
	if player.Balance != 1875 {
		t.Errorf("balance = %d, want the bare refund with pending rent forfeited", player.Balance)
	}
	if _, ok := env.props.props[id]; ok {
		t.Error("sold property still exists")
	}
}

func TestSellPropertyNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayer("123", 0)

	if _, err := env.svc.SellProperty(context.Background(), "123", 999); !errors.Is(err, ErrPropertyNotFound) {
		t.Fatalf("want ErrPropertyNotFound, got %v", err)
	}
}

func TestListPropertiesNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayer("123", 0)
	start := *env.clock
	env.seedProperty("123", LandEmptyLot, 1, 100, start)
	newest := env.seedProperty("123", LandSuburbs, 1, 100, start.Add(time.Minute))

	properties, err := env.svc.ListProperties(context.Background(), "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(properties) != 2 {
		t.Fatalf("got %d properties, want 2", len(properties))
	}
	if properties[0].ID != newest {
		t.Errorf("first property = %d, want newest %d", properties[0].ID, newest)
	}
}
