package workout

import (
	"math"
	"time"
)

// ExerciseInput is a raw exercise entry as submitted by the client,
// before calorie enrichment.
type ExerciseInput struct {
	Name            string   `json:"name"`
	Category        Category `json:"category"`
	DurationMinutes float64  `json:"durationMinutes"`
}

// Calculator derives calorie values for submitted exercises.
type Calculator struct {
	rates *RateTable
}

func NewCalculator(rates *RateTable) *Calculator {
	return &Calculator{
		rates: rates,
	}
}

// Enrich validates the submitted exercises and produces a workout with
// per-exercise calories and totals computed. Pure, no side effects.
// Totals are exact sums of the already-rounded per-exercise values.
func (c *Calculator) Enrich(userID int, inputs []ExerciseInput, createdAt time.Time) (*Workout, error) {
	if len(inputs) == 0 {
		return nil, &ValidationError{Field: "exercises", Message: "must not be empty"}
	}

	exercises := make([]Exercise, 0, len(inputs))
	totalCalories := 0
	totalDuration := float64(0)
	for _, in := range inputs {
		if in.Name == "" {
			return nil, &ValidationError{Field: "name", Message: "must not be empty"}
		}
		if in.DurationMinutes <= 0 {
			return nil, &ValidationError{Field: "durationMinutes", Message: "must be a positive number"}
		}
		if !in.Category.Valid() {
			return nil, &ValidationError{Field: "category", Message: "must be one of: strength, cardio, flexibility"}
		}

		caloriesBurned := int(math.Round(c.rates.Rate(in.Name) * in.DurationMinutes))
		exercises = append(exercises, Exercise{
			Name:            in.Name,
			Category:        in.Category,
			DurationMinutes: in.DurationMinutes,
			CaloriesBurned:  caloriesBurned,
		})

		totalCalories += caloriesBurned
		totalDuration += in.DurationMinutes
	}

	return &Workout{
		UserID:               userID,
		CreatedAt:            createdAt,
		Exercises:            exercises,
		TotalCalories:        totalCalories,
		TotalDurationMinutes: totalDuration,
	}, nil
}
