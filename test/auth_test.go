package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/dusanmitic/fittrack/internal/user"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testPassword = "test-password-123"

// registerTestUser creates a fresh user through the public register
// endpoint and returns it together with its session token.
func (s *IntegrationTestSuite) registerTestUser(ctx context.Context, t *testing.T) (*user.User, string) {
	registerReq := map[string]string{
		"name":     gofakeit.Name(),
		"email":    fmt.Sprintf("%s@fittrack.test", uuid.NewString()),
		"password": testPassword,
	}
	registerReqJson, err := json.Marshal(registerReq)
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/auth/register", serverEndpoint), bytes.NewBuffer(registerReqJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NotEmpty(t, respBytes)

	var registerResp user.RegisterResponse
	require.NoError(t, json.Unmarshal(respBytes, &registerResp))
	require.NotNil(t, registerResp.User)
	require.NotEmpty(t, registerResp.Token)

	return registerResp.User, registerResp.Token
}

func doLogin(ctx context.Context, t *testing.T, httpClient *http.Client, email, password string) (*http.Response, error) {
	loginReq := map[string]string{
		"email":    email,
		"password": password,
	}
	loginReqJson, err := json.Marshal(loginReq)
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/auth/login", serverEndpoint), bytes.NewBuffer(loginReqJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	return httpClient.Do(req)
}
