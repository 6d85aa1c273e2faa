package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/dusanmitic/fittrack/internal/exercise"
	"github.com/dusanmitic/fittrack/internal/gym"
	"github.com/dusanmitic/fittrack/internal/workout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestCatalog_publicAccess() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// catalog reads need no auth token
	for _, path := range []string{"/gyms", "/gyms/cities", "/exercises", "/tutorials", "/blog/all"} {
		t.Run(path, func(t *testing.T) {
			req, err := http.NewRequestWithContext(ctx, "GET", serverEndpoint+path, nil)
			require.NoError(t, err)
			req.Header.Set("User-Agent", "test-agent")

			resp, err := s.httpClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func (s *IntegrationTestSuite) TestCatalog_adminGating() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.redisDataCleanup(ctx))

	_, token := s.registerTestUser(ctx, t)

	newGymJson, err := json.Marshal(gym.Gym{
		Name: "Iron Temple",
		City: "Belgrade",
	})
	require.NoError(t, err)

	t.Run("no token", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/gyms/admin/new", serverEndpoint), bytes.NewBuffer(newGymJson))
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("non-admin token", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/gyms/admin/new", serverEndpoint), bytes.NewBuffer(newGymJson))
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-FITTRACK-TOKEN", token)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Contains(t, string(respBytes), "no can do")
	})

	t.Run("exercise mutations gated too", func(t *testing.T) {
		newExerciseJson, err := json.Marshal(exercise.Exercise{
			Name:              "Burpees",
			Category:          workout.CategoryCardio,
			CaloriesPerMinute: 15,
		})
		require.NoError(t, err)

		req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/exercises/admin/new", serverEndpoint), bytes.NewBuffer(newExerciseJson))
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-FITTRACK-TOKEN", token)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
