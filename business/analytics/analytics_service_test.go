package analytics

import (
	"context"
	"testing"
	"time"

	"laundryTrack/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyticsLoads struct {
	loads []domain.Load
}

func (f *fakeAnalyticsLoads) FindSince(_ context.Context, userID uint, since time.Time) ([]domain.Load, error) {
	var out []domain.Load
	for _, load := range f.loads {
		if load.UserID == userID && !load.PickupDate.Before(since) {
			out = append(out, load)
		}
	}
	return out, nil
}

func loadAt(userID uint, pickup time.Time, amount float64) domain.Load {
	return domain.Load{
		UserID:     userID,
		PickupDate: pickup,
		Items:      []domain.LoadItem{{ClothType: "Shirt", Rate: amount, Count: 1}},
	}
}

// fixed reference clock: Wednesday 2026-08-19
var testNow = time.Date(2026, time.August, 19, 15, 30, 0, 0, time.Local)

func newAnalyticsFixture(loads ...domain.Load) *analyticsService {
	svc := NewAnalyticsService(&fakeAnalyticsLoads{loads: loads})
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestGetExpenditureBuckets(t *testing.T) {
	// week of testNow starts Sunday 2026-08-16 at local midnight
	svc := newAnalyticsFixture(
		loadAt(1, time.Date(2026, time.August, 17, 10, 0, 0, 0, time.Local), 100), // this week
		loadAt(1, time.Date(2026, time.August, 3, 10, 0, 0, 0, time.Local), 50),   // this month, before Sunday
		loadAt(1, time.Date(2026, time.March, 5, 10, 0, 0, 0, time.Local), 30),    // this year only
	)

	exp, err := svc.GetExpenditure(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 100.0, exp.Weekly)
	assert.Equal(t, 150.0, exp.Monthly)
	assert.Equal(t, 180.0, exp.Yearly)

	require.Len(t, exp.ChartData, 12)
	assert.Equal(t, MonthAmount{Month: "Mar", Amount: 30}, exp.ChartData[2])
	assert.Equal(t, MonthAmount{Month: "Aug", Amount: 150}, exp.ChartData[7])
	assert.Equal(t, MonthAmount{Month: "Jan", Amount: 0}, exp.ChartData[0])
}

func TestGetExpenditureWeekBoundary(t *testing.T) {
	sundayMidnight := time.Date(2026, time.August, 16, 0, 0, 0, 0, time.Local)
	svc := newAnalyticsFixture(
		loadAt(1, sundayMidnight, 40),
		loadAt(1, sundayMidnight.Add(-time.Second), 60), // Saturday night, previous week
	)

	exp, err := svc.GetExpenditure(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 40.0, exp.Weekly)
	assert.Equal(t, 100.0, exp.Monthly)
}

func TestGetExpenditureIgnoresPriorYears(t *testing.T) {
	svc := newAnalyticsFixture(
		loadAt(1, time.Date(2025, time.December, 20, 0, 0, 0, 0, time.Local), 500),
		loadAt(1, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.Local), 70),
	)

	exp, err := svc.GetExpenditure(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 70.0, exp.Yearly)
	assert.Equal(t, 0.0, exp.Monthly)
	assert.Equal(t, 0.0, exp.Weekly)
	assert.Equal(t, MonthAmount{Month: "Feb", Amount: 70}, exp.ChartData[1])
	assert.Equal(t, MonthAmount{Month: "Dec", Amount: 0}, exp.ChartData[11])
}

func TestGetExpenditureScopedToUser(t *testing.T) {
	svc := newAnalyticsFixture(
		loadAt(1, testNow, 100),
		loadAt(2, testNow, 999),
	)

	exp, err := svc.GetExpenditure(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, exp.Yearly)
}

func TestGetExpenditureDeliveryStateIrrelevant(t *testing.T) {
	deliveredAt := testNow.Add(-time.Hour)
	delivered := loadAt(1, testNow, 100)
	delivered.IsDelivered = true
	delivered.DeliveredAt = &deliveredAt

	svc := newAnalyticsFixture(delivered, loadAt(1, testNow, 50))

	exp, err := svc.GetExpenditure(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 150.0, exp.Weekly)
}

func TestGetExpenditureEmpty(t *testing.T) {
	svc := newAnalyticsFixture()

	exp, err := svc.GetExpenditure(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, exp.Yearly)
	require.Len(t, exp.ChartData, 12)
	for _, bar := range exp.ChartData {
		assert.Zero(t, bar.Amount)
	}
}
