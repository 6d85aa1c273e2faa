package workout

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/dusanmitic/fittrack/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

const maxMonthlyBuckets = 6

// Analyzer computes windowed statistics over a user's workout history.
// Read-only, tolerant of an empty history.
type Analyzer struct {
	repo   workoutRepo
	ledger userLedger
}

func NewAnalyzer(repo workoutRepo, ledger userLedger) *Analyzer {
	return &Analyzer{
		repo:   repo,
		ledger: ledger,
	}
}

// ComputeStats returns the workout count, the calories burned within the
// last 7 days, the lifetime average per workout and the monthly series.
// The average uses the lifetime counter as numerator on purpose, it is
// not restricted to any window.
func (a *Analyzer) ComputeStats(ctx context.Context, userID int, now time.Time) (_ *Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workout.computeStats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	totalWorkouts, err := a.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if totalWorkouts == 0 {
		return &Stats{MonthlyData: []MonthlyBucket{}}, nil
	}

	workouts, err := a.repo.ListByUser(ctx, ListParams{UserID: userID})
	if err != nil {
		return nil, err
	}

	weekStart := now.AddDate(0, 0, -7)
	weekCalories := 0
	type yearMonth struct {
		year  int
		month int
	}
	month2bucket := make(map[yearMonth]*MonthlyBucket)
	for _, w := range workouts {
		if !w.CreatedAt.Before(weekStart) {
			weekCalories += w.TotalCalories
		}

		ym := yearMonth{year: w.CreatedAt.Year(), month: int(w.CreatedAt.Month())}
		bucket, ok := month2bucket[ym]
		if !ok {
			bucket = &MonthlyBucket{Year: ym.year, Month: ym.month}
			month2bucket[ym] = bucket
		}
		bucket.TotalCalories += w.TotalCalories
		bucket.WorkoutCount++
	}

	monthlyData := make([]MonthlyBucket, 0, len(month2bucket))
	for _, bucket := range month2bucket {
		monthlyData = append(monthlyData, *bucket)
	}
	sort.Slice(monthlyData, func(i, j int) bool {
		if monthlyData[i].Year != monthlyData[j].Year {
			return monthlyData[i].Year < monthlyData[j].Year
		}
		return monthlyData[i].Month < monthlyData[j].Month
	})
	// keep the latest buckets only, ascending order preserved
	if len(monthlyData) > maxMonthlyBuckets {
		monthlyData = monthlyData[len(monthlyData)-maxMonthlyBuckets:]
	}

	lifetimeCalories, err := a.ledger.LifetimeCalories(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalWorkouts:   totalWorkouts,
		WeekCalories:    weekCalories,
		AverageCalories: int(math.Round(float64(lifetimeCalories) / float64(totalWorkouts))),
		MonthlyData:     monthlyData,
	}, nil
}
