package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.redisDataCleanup(ctx))

	registeredUser, _ := s.registerTestUser(ctx, t)

	t.Run("good creds", func(t *testing.T) {
		resp, err := doLogin(ctx, t, s.httpClient, registeredUser.Email, testPassword)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var loginResp struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(respBytes, &loginResp))
		assert.NotEmpty(t, loginResp.Token)
	})

	t.Run("good creds, then logout", func(t *testing.T) {
		resp, err := doLogin(ctx, t, s.httpClient, registeredUser.Email, testPassword)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var loginResp struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(respBytes, &loginResp))
		require.NotEmpty(t, loginResp.Token)

		req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/auth/logout", serverEndpoint), nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("X-FITTRACK-TOKEN", loginResp.Token)

		logoutResp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer logoutResp.Body.Close()
		assert.Equal(t, http.StatusOK, logoutResp.StatusCode)

		// a terminated session cannot reach protected endpoints anymore
		profileReq, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/profile", serverEndpoint), nil)
		require.NoError(t, err)
		profileReq.Header.Set("User-Agent", "test-agent")
		profileReq.Header.Set("X-FITTRACK-TOKEN", loginResp.Token)

		profileResp, err := s.httpClient.Do(profileReq)
		require.NoError(t, err)
		defer profileResp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, profileResp.StatusCode)
	})

	t.Run("bad password", func(t *testing.T) {
		resp, err := doLogin(ctx, t, s.httpClient, registeredUser.Email, "bad-password")
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "error, wrong credentials", strings.TrimSpace(string(respBytes)))
	})

	t.Run("unknown email", func(t *testing.T) {
		resp, err := doLogin(ctx, t, s.httpClient, "nobody@fittrack.test", testPassword)
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		defer resp.Body.Close()

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "error, wrong credentials", strings.TrimSpace(string(respBytes)))
	})

	t.Run("rate limiting", func(t *testing.T) {
		// simulate login requests brute force attack
		loginReqJson, err := json.Marshal(map[string]string{
			"email":    "brute@force.test",
			"password": "brute-force-pass",
		})
		require.NoError(t, err)

		// config is set to allow 10 login attempts per minute, so after 10th attempt
		// we should get rejected, but first, do a redis cleanup
		require.NoError(t, s.redisDataCleanup(ctx))

		for i := 1; i <= 15; i++ {
			req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/auth/login", serverEndpoint), bytes.NewBuffer(loginReqJson))
			require.NoError(t, err)
			req.Header.Set("User-Agent", "test-agent")
			req.Header.Set("Content-Type", "application/json")

			resp, err := s.httpClient.Do(req)
			require.NoError(t, err)

			respBytes, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			if i <= 10 {
				require.Equal(t, http.StatusBadRequest, resp.StatusCode, "iteration: %d", i)
			} else {
				require.Equal(t, http.StatusTooEarly, resp.StatusCode, "iteration: %d", i)
				assert.Contains(t, string(respBytes), "retry after", "iteration: %d", i)
			}

			assert.NoError(t, resp.Body.Close())
		}

		require.NoError(t, s.redisDataCleanup(ctx))
	})
}
