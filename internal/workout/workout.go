package workout

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	// ErrLedgerUpdate means the workout insert was rolled back because the
	// user lifetime calories counter could not be credited.
	ErrLedgerUpdate = errors.New("lifetime calories update failed")
)

type Category string

const (
	CategoryStrength    Category = "strength"
	CategoryCardio      Category = "cardio"
	CategoryFlexibility Category = "flexibility"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryStrength, CategoryCardio, CategoryFlexibility:
		return true
	}
	return false
}

// ValidationError rejects a workout submission before anything is persisted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Exercise is one logged entry within a workout. CaloriesBurned is
// derived from the rate table at submission time, never set by callers.
type Exercise struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Category        Category `json:"category"`
	DurationMinutes float64  `json:"durationMinutes"`
	CaloriesBurned  int      `json:"caloriesBurned"`
}

// Workout is an immutable record of one training session. Totals are
// always recomputed from the exercises, there is no update or delete path.
type Workout struct {
	ID                   int        `json:"id"`
	UserID               int        `json:"userId"`
	CreatedAt            time.Time  `json:"createdAt"`
	Exercises            []Exercise `json:"exercises"`
	TotalCalories        int        `json:"totalCalories"`
	TotalDurationMinutes float64    `json:"totalDurationMinutes"`
}

type MonthlyBucket struct {
	Year          int `json:"year"`
	Month         int `json:"month"`
	TotalCalories int `json:"totalCalories"`
	WorkoutCount  int `json:"workoutCount"`
}

type Stats struct {
	TotalWorkouts   int             `json:"totalWorkouts"`
	WeekCalories    int             `json:"weekCalories"`
	AverageCalories int             `json:"averageCalories"`
	MonthlyData     []MonthlyBucket `json:"monthlyData"`
}

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// WindowStart resolves the period to the earliest timestamp included in
// the listing window, or nil for the full history.
func (p Period) WindowStart(now time.Time) *time.Time {
	switch p {
	case PeriodWeek:
		from := now.AddDate(0, 0, -7)
		return &from
	case PeriodMonth:
		from := now.AddDate(0, -1, 0)
		return &from
	default:
		return nil
	}
}
