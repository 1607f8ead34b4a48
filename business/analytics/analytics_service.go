package analytics

import (
	"context"
	"fmt"
	"time"

	"laundryTrack/domain"
	"laundryTrack/pkg/logger"
)

// LoadRepository contract interface
type LoadRepository interface {
	FindSince(ctx context.Context, userID uint, since time.Time) ([]domain.Load, error)
}

// MonthAmount is one bar of the twelve-month chart.
type MonthAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// Expenditure is the spend summary for the current week, month and year.
type Expenditure struct {
	Weekly    float64       `json:"weekly"`
	Monthly   float64       `json:"monthly"`
	Yearly    float64       `json:"yearly"`
	ChartData []MonthAmount `json:"chart_data"`
}

var monthLabels = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

type analyticsService struct {
	loadRepo LoadRepository
	now      func() time.Time
}

func NewAnalyticsService(loadRepo LoadRepository) *analyticsService {
	return &analyticsService{
		loadRepo: loadRepo,
		now:      time.Now,
	}
}

// GetExpenditure folds the caller's current-year loads into weekly, monthly
// and yearly sums plus a Jan-Dec chart. A load counts by its pickup date
// alone; delivery state is irrelevant.
func (s *analyticsService) GetExpenditure(ctx context.Context, userID uint) (Expenditure, error) {
	if err := ctx.Err(); err != nil {
		return Expenditure{}, fmt.Errorf("context error: %w", err)
	}

	now := s.now()

	// week starts Sunday at local midnight
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -int(now.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	start := time.Now()

	loads, err := s.loadRepo.FindSince(ctx, userID, yearStart)
	if err != nil {
		logger.Error("Failed to fetch loads for expenditure", err)
		return Expenditure{}, err
	}

	var weekly, monthly, yearly float64
	monthTotals := make([]float64, 12)

	for _, load := range loads {
		total := load.Total()

		yearly += total

		if !load.PickupDate.Before(monthStart) {
			monthly += total
		}

		if !load.PickupDate.Before(weekStart) {
			weekly += total
		}

		if load.PickupDate.Year() == now.Year() {
			monthTotals[int(load.PickupDate.Month())-1] += total
		}
	}

	chartData := make([]MonthAmount, 0, len(monthLabels))
	for i, label := range monthLabels {
		chartData = append(chartData, MonthAmount{
			Month:  label,
			Amount: monthTotals[i],
		})
	}

	ExpenditureQueryDuration.Observe(time.Since(start).Seconds())

	return Expenditure{
		Weekly:    weekly,
		Monthly:   monthly,
		Yearly:    yearly,
		ChartData: chartData,
	}, nil
}
