package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/dusanmitic/fittrack/internal/user"
	"github.com/dusanmitic/fittrack/internal/workout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addWorkoutRequest struct {
	Exercises []workout.ExerciseInput `json:"exercises"`
}

func (s *IntegrationTestSuite) addWorkout(
	ctx context.Context, t *testing.T,
	token string, exercises []workout.ExerciseInput,
) *http.Response {
	reqJson, err := json.Marshal(addWorkoutRequest{Exercises: exercises})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/workouts", serverEndpoint), bytes.NewBuffer(reqJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-FITTRACK-TOKEN", token)

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	return resp
}

func (s *IntegrationTestSuite) getWorkoutStats(ctx context.Context, t *testing.T, token string) workout.Stats {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/workouts/stats", serverEndpoint), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-FITTRACK-TOKEN", token)

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var stats workout.Stats
	require.NoError(t, json.Unmarshal(respBytes, &stats))
	return stats
}

func (s *IntegrationTestSuite) TestWorkouts() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.redisDataCleanup(ctx))

	registeredUser, token := s.registerTestUser(ctx, t)

	t.Run("add workout", func(t *testing.T) {
		resp := s.addWorkout(ctx, t, token, []workout.ExerciseInput{
			{Name: "Push-ups", Category: workout.CategoryStrength, DurationMinutes: 10},
			{Name: "Running", Category: workout.CategoryCardio, DurationMinutes: 5},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var addResp workout.AddWorkoutResponse
		require.NoError(t, json.Unmarshal(respBytes, &addResp))
		require.NotNil(t, addResp.Workout)

		assert.Equal(t, registeredUser.ID, addResp.Workout.UserID)
		require.Len(t, addResp.Workout.Exercises, 2)
		assert.Equal(t, 80, addResp.Workout.Exercises[0].CaloriesBurned)
		assert.Equal(t, 60, addResp.Workout.Exercises[1].CaloriesBurned)
		assert.Equal(t, 140, addResp.Workout.TotalCalories)
		assert.Equal(t, float64(15), addResp.Workout.TotalDurationMinutes)
		assert.Equal(t, 140, addResp.LifetimeCalories)
	})

	t.Run("add second workout", func(t *testing.T) {
		resp := s.addWorkout(ctx, t, token, []workout.ExerciseInput{
			{Name: "Plank", Category: workout.CategoryFlexibility, DurationMinutes: 5},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var addResp workout.AddWorkoutResponse
		require.NoError(t, json.Unmarshal(respBytes, &addResp))
		assert.Equal(t, 20, addResp.Workout.TotalCalories)
		assert.Equal(t, 160, addResp.LifetimeCalories)
	})

	t.Run("list workouts", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/workouts", serverEndpoint), nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("X-FITTRACK-TOKEN", token)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var listResp workout.ListResponse
		require.NoError(t, json.Unmarshal(respBytes, &listResp))
		require.Equal(t, 2, listResp.Total)
		require.Len(t, listResp.Workouts, 2)

		// newest first
		assert.Equal(t, 20, listResp.Workouts[0].TotalCalories)
		assert.Equal(t, 140, listResp.Workouts[1].TotalCalories)
	})

	t.Run("stats", func(t *testing.T) {
		stats := s.getWorkoutStats(ctx, t, token)
		assert.Equal(t, 2, stats.TotalWorkouts)
		assert.Equal(t, 160, stats.WeekCalories)
		assert.Equal(t, 80, stats.AverageCalories)
		require.Len(t, stats.MonthlyData, 1)
		assert.Equal(t, 160, stats.MonthlyData[0].TotalCalories)
		assert.Equal(t, 2, stats.MonthlyData[0].WorkoutCount)

		// second read comes from the cache and must match
		cachedStats := s.getWorkoutStats(ctx, t, token)
		assert.Equal(t, stats, cachedStats)
	})

	t.Run("profile carries lifetime calories", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/profile", serverEndpoint), nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("X-FITTRACK-TOKEN", token)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var u user.User
		require.NoError(t, json.Unmarshal(respBytes, &u))
		assert.Equal(t, 160, u.TotalCaloriesBurned)
	})

	t.Run("unknown exercise gets default rate", func(t *testing.T) {
		_, otherToken := s.registerTestUser(ctx, t)
		resp := s.addWorkout(ctx, t, otherToken, []workout.ExerciseInput{
			{Name: "Zumba", Category: workout.CategoryCardio, DurationMinutes: 4},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var addResp workout.AddWorkoutResponse
		require.NoError(t, json.Unmarshal(respBytes, &addResp))
		assert.Equal(t, 20, addResp.Workout.TotalCalories)
	})
}

func (s *IntegrationTestSuite) TestWorkouts_validation() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.redisDataCleanup(ctx))

	_, token := s.registerTestUser(ctx, t)

	cases := map[string]struct {
		exercises     []workout.ExerciseInput
		expectedField string
	}{
		"no exercises": {
			exercises:     []workout.ExerciseInput{},
			expectedField: "exercises",
		},
		"empty name": {
			exercises: []workout.ExerciseInput{
				{Name: "", Category: workout.CategoryCardio, DurationMinutes: 10},
			},
			expectedField: "name",
		},
		"zero duration": {
			exercises: []workout.ExerciseInput{
				{Name: "Running", Category: workout.CategoryCardio, DurationMinutes: 0},
			},
			expectedField: "durationMinutes",
		},
		"bad category": {
			exercises: []workout.ExerciseInput{
				{Name: "Running", Category: "swimming", DurationMinutes: 10},
			},
			expectedField: "category",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			resp := s.addWorkout(ctx, t, token, tc.exercises)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			defer resp.Body.Close()

			respBytes, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, strings.TrimSpace(string(respBytes)), tc.expectedField)
		})
	}

	t.Run("no auth token", func(t *testing.T) {
		reqJson, err := json.Marshal(addWorkoutRequest{Exercises: []workout.ExerciseInput{
			{Name: "Running", Category: workout.CategoryCardio, DurationMinutes: 10},
		}})
		require.NoError(t, err)

		req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/workouts", serverEndpoint), bytes.NewBuffer(reqJson))
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func (s *IntegrationTestSuite) TestWorkouts_concurrentSubmissions() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.redisDataCleanup(ctx))

	registeredUser, token := s.registerTestUser(ctx, t)

	submissions := [][]workout.ExerciseInput{
		{{Name: "Walking", Category: workout.CategoryCardio, DurationMinutes: 10}},  // 50 kcal
		{{Name: "Lunges", Category: workout.CategoryStrength, DurationMinutes: 10}}, // 70 kcal
	}

	var wg sync.WaitGroup
	for _, exercises := range submissions {
		wg.Add(1)
		go func(exercises []workout.ExerciseInput) {
			defer wg.Done()
			resp := s.addWorkout(ctx, t, token, exercises)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusCreated, resp.StatusCode)
		}(exercises)
	}
	wg.Wait()

	// both increments have to land, regardless of interleaving
	var totalCaloriesBurned int
	require.NoError(t, s.DB.
		QueryRowContext(ctx, "SELECT total_calories_burned FROM fituser WHERE id = $1", registeredUser.ID).
		Scan(&totalCaloriesBurned))
	assert.Equal(t, 120, totalCaloriesBurned)

	stats := s.getWorkoutStats(ctx, t, token)
	assert.Equal(t, 2, stats.TotalWorkouts)
	assert.Equal(t, 120, stats.WeekCalories)
	assert.Equal(t, 60, stats.AverageCalories)
}

// Manual ledger corrections (e.g. support fixing a miscounted workout)
// go straight through the user repo, outside the workout flow.
func (s *IntegrationTestSuite) TestWorkouts_manualLedgerAdjustment() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.redisDataCleanup(ctx))

	registeredUser, token := s.registerTestUser(ctx, t)

	resp := s.addWorkout(ctx, t, token, []workout.ExerciseInput{
		{Name: "Push-ups", Category: workout.CategoryStrength, DurationMinutes: 10}, // 80 kcal
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	userRepo := user.NewRepo(s.pgxPool)
	newTotal, err := userRepo.IncrementLifetimeCalories(ctx, registeredUser.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, 120, newTotal)

	// a correction can also take calories away
	newTotal, err = userRepo.IncrementLifetimeCalories(ctx, registeredUser.ID, -20)
	require.NoError(t, err)
	assert.Equal(t, 100, newTotal)

	_, err = userRepo.IncrementLifetimeCalories(ctx, 999999, 40)
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	// the profile reads the same ledger row
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/profile", serverEndpoint), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-FITTRACK-TOKEN", token)

	profileResp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, profileResp.StatusCode)
	defer profileResp.Body.Close()

	respBytes, err := io.ReadAll(profileResp.Body)
	require.NoError(t, err)

	var u user.User
	require.NoError(t, json.Unmarshal(respBytes, &u))
	assert.Equal(t, 100, u.TotalCaloriesBurned)
}
