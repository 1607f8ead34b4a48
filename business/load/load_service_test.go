package load

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"laundryTrack/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoads struct {
	byID   map[uint]*domain.Load
	nextID uint
}

func newFakeLoads() *fakeLoads {
	return &fakeLoads{byID: map[uint]*domain.Load{}, nextID: 1}
}

func (f *fakeLoads) Create(_ context.Context, load *domain.Load) error {
	load.ID = f.nextID
	f.nextID++
	load.CreatedAt = time.Now()
	for i := range load.Items {
		load.Items[i].ID = f.nextID
		load.Items[i].LoadID = load.ID
		f.nextID++
	}
	cpy := *load
	f.byID[load.ID] = &cpy
	return nil
}

func (f *fakeLoads) Replace(_ context.Context, load *domain.Load) error {
	stored, ok := f.byID[load.ID]
	if !ok {
		return errors.New("load not found")
	}
	stored.ShopID = load.ShopID
	stored.LoadType = load.LoadType
	stored.PickupDate = load.PickupDate
	stored.Items = nil
	for _, item := range load.Items {
		item.ID = f.nextID
		item.LoadID = load.ID
		f.nextID++
		stored.Items = append(stored.Items, item)
	}
	return nil
}

func (f *fakeLoads) Delete(_ context.Context, id uint) error {
	if _, ok := f.byID[id]; !ok {
		return errors.New("load not found")
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeLoads) FindByID(_ context.Context, userID, id uint) (domain.Load, error) {
	load, ok := f.byID[id]
	if !ok || load.UserID != userID {
		return domain.Load{}, errors.New("load not found")
	}
	return *load, nil
}

func (f *fakeLoads) FindAll(_ context.Context, userID uint) ([]domain.Load, error) {
	var out []domain.Load
	for _, load := range f.byID {
		if load.UserID == userID {
			out = append(out, *load)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeLoads) FindRecentItems(_ context.Context, userID uint) ([]domain.LoadItem, error) {
	loads, _ := f.FindAll(context.Background(), userID)
	var items []domain.LoadItem
	for _, load := range loads {
		items = append(items, load.Items...)
	}
	return items, nil
}

func (f *fakeLoads) SetDelivered(_ context.Context, id uint, delivered bool, deliveredAt *time.Time) error {
	load, ok := f.byID[id]
	if !ok {
		return errors.New("load not found")
	}
	load.IsDelivered = delivered
	load.DeliveredAt = deliveredAt
	return nil
}

type fakeLoadShops struct {
	byID map[uint]domain.Shop
}

func (f *fakeLoadShops) FindByID(_ context.Context, userID, id uint) (domain.Shop, error) {
	shop, ok := f.byID[id]
	if !ok || shop.UserID != userID {
		return domain.Shop{}, errors.New("shop not found")
	}
	return shop, nil
}

type loadFixture struct {
	loads *fakeLoads
	svc   *loadService
}

func newLoadFixture() *loadFixture {
	loads := newFakeLoads()
	shops := &fakeLoadShops{byID: map[uint]domain.Shop{
		10: {ID: 10, UserID: 1, Name: "Main St"},
		20: {ID: 20, UserID: 2, Name: "Other"},
	}}
	return &loadFixture{loads: loads, svc: NewLoadService(loads, shops)}
}

func validInput() Input {
	return Input{
		ShopID:     10,
		LoadType:   domain.LoadTypeWash,
		PickupDate: time.Date(2026, 8, 10, 0, 0, 0, 0, time.Local),
		Items: []ItemInput{
			{ClothType: "Shirt", Rate: 20, Count: 3},
			{ClothType: "Trousers", Rate: 25, Count: 2},
		},
	}
}

func TestCreate(t *testing.T) {
	f := newLoadFixture()

	load, err := f.svc.Create(context.Background(), 1, validInput())
	require.NoError(t, err)
	assert.NotZero(t, load.ID)
	require.Len(t, load.Items, 2)
	assert.Equal(t, load.ID, load.Items[0].LoadID)
	assert.Equal(t, 110.0, load.Total())
	assert.False(t, load.IsDelivered)
}

func TestCreateValidation(t *testing.T) {
	f := newLoadFixture()
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*Input)
		wantErr string
	}{
		{"bad load type", func(in *Input) { in.LoadType = "FOLD" }, "invalid load type"},
		{"zero pickup date", func(in *Input) { in.PickupDate = time.Time{} }, "pickup date is required"},
		{"no items", func(in *Input) { in.Items = nil }, "at least one item is required"},
		{"empty cloth type", func(in *Input) { in.Items[0].ClothType = "" }, "item cloth type is required"},
		{"zero rate", func(in *Input) { in.Items[1].Rate = 0 }, "item rate must be positive"},
		{"negative count", func(in *Input) { in.Items[0].Count = -1 }, "item count must be positive"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := f.svc.Create(ctx, 1, in)
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestCreateForeignShop(t *testing.T) {
	f := newLoadFixture()

	in := validInput()
	in.ShopID = 20
	_, err := f.svc.Create(context.Background(), 1, in)
	assert.ErrorIs(t, err, ErrShopNotFound)
}

func TestUpdateReplacesItems(t *testing.T) {
	f := newLoadFixture()
	ctx := context.Background()

	load, err := f.svc.Create(ctx, 1, validInput())
	require.NoError(t, err)
	oldItemIDs := map[uint]bool{}
	for _, item := range load.Items {
		oldItemIDs[item.ID] = true
	}

	in := validInput()
	in.LoadType = domain.LoadTypeIron
	in.Items = []ItemInput{{ClothType: "Saree", Rate: 80, Count: 1}}
	require.NoError(t, f.svc.Update(ctx, 1, load.ID, in))

	updated, err := f.svc.GetByID(ctx, 1, load.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoadTypeIron, updated.LoadType)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "Saree", updated.Items[0].ClothType)
	assert.False(t, oldItemIDs[updated.Items[0].ID], "items must be reinserted, not patched")
}

func TestUpdateNotFound(t *testing.T) {
	f := newLoadFixture()
	ctx := context.Background()

	load, err := f.svc.Create(ctx, 1, validInput())
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Update(ctx, 1, 999, validInput()), ErrLoadNotFound)
	assert.ErrorIs(t, f.svc.Update(ctx, 2, load.ID, validInput()), ErrLoadNotFound)
}

func TestDelete(t *testing.T) {
	f := newLoadFixture()
	ctx := context.Background()

	load, err := f.svc.Create(ctx, 1, validInput())
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, 2, load.ID), ErrLoadNotFound)

	require.NoError(t, f.svc.Delete(ctx, 1, load.ID))
	_, err = f.svc.GetByID(ctx, 1, load.ID)
	assert.ErrorIs(t, err, ErrLoadNotFound)
}

func TestDeliveredRoundTrip(t *testing.T) {
	f := newLoadFixture()
	ctx := context.Background()

	load, err := f.svc.Create(ctx, 1, validInput())
	require.NoError(t, err)

	require.NoError(t, f.svc.MarkDelivered(ctx, 1, load.ID))
	stored := f.loads.byID[load.ID]
	assert.True(t, stored.IsDelivered)
	require.NotNil(t, stored.DeliveredAt)
	assert.WithinDuration(t, time.Now(), *stored.DeliveredAt, time.Minute)

	require.NoError(t, f.svc.UnmarkDelivered(ctx, 1, load.ID))
	assert.False(t, stored.IsDelivered)
	assert.Nil(t, stored.DeliveredAt)

	assert.ErrorIs(t, f.svc.MarkDelivered(ctx, 2, load.ID), ErrLoadNotFound)
}

func TestGetLastRates(t *testing.T) {
	f := newLoadFixture()
	ctx := context.Background()

	older := validInput()
	older.Items = []ItemInput{
		{ClothType: "Shirt", Rate: 18, Count: 1},
		{ClothType: "Towel", Rate: 10, Count: 2},
	}
	_, err := f.svc.Create(ctx, 1, older)
	require.NoError(t, err)

	// fake orders by CreatedAt, so nudge the clock between loads
	f.loads.byID[1].CreatedAt = f.loads.byID[1].CreatedAt.Add(-time.Hour)

	newer := validInput()
	newer.Items = []ItemInput{{ClothType: "SHIRT", Rate: 22, Count: 1}}
	_, err = f.svc.Create(ctx, 1, newer)
	require.NoError(t, err)

	rates, err := f.svc.GetLastRates(ctx, 1)
	require.NoError(t, err)
	// newest rate wins per label, keys lowercased
	assert.Equal(t, map[string]float64{"shirt": 22, "towel": 10}, rates)
}

func TestGetLastRatesEmpty(t *testing.T) {
	f := newLoadFixture()

	rates, err := f.svc.GetLastRates(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, rates)
}
