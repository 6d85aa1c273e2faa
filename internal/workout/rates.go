package workout

// DefaultCaloriesPerMinute is used for exercise names missing from the
// rate table. Names are free text, so the table can never be exhaustive;
// the fallback keeps calorie computation total.
const DefaultCaloriesPerMinute = 5

// RateTable maps an exercise name to its calories-burned-per-minute rate.
type RateTable struct {
	rates map[string]float64
}

func NewRateTable() *RateTable {
	return &RateTable{
		rates: map[string]float64{
			"Push-ups":          8,
			"Squats":            6,
			"Jumping Jacks":     10,
			"Walking":           5,
			"Plank":             4,
			"Lunges":            7,
			"Running":           12,
			"Burpees":           15,
			"Mountain Climbers": 11,
			"Yoga":              3,
		},
	}
}

// Rate never fails, unknown names fall back to DefaultCaloriesPerMinute.
func (t *RateTable) Rate(name string) float64 {
	if rate, ok := t.rates[name]; ok {
		return rate
	}
	return DefaultCaloriesPerMinute
}
