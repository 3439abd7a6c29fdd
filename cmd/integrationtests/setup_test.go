package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	market "bid-marketplace/internal/marketService"
	model "bid-marketplace/internal/models"
	"bid-marketplace/internal/repository"
	"bid-marketplace/internal/server"

	"github.com/gin-gonic/gin"
)

// SetupTestRouter initializes the router with an in-memory repository seeded
// with the given users for integration testing.
func SetupTestRouter(t *testing.T, users ...model.User) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	repo := repository.NewMemoryRepo()

	for _, user := range users {
		if err := repo.CreateUser(context.Background(), user); err != nil {
			t.Fatalf("failed to seed user %s: %v", user.ID, err)
		}
	}

	service := market.NewMarketplaceService(repo)
	return server.SetupRouter(service)
}

// DefaultUsers returns the standard seed users used across the API tests.
func DefaultUsers() []model.User {
	return []model.User{
		{ID: "u1", Name: "Alice Carter", Email: "alice@example.com"},
		{ID: "u2", Name: "Ben Osei", Email: "ben@example.com"},
		{ID: "u3", Name: "Carla Reyes", Email: "carla@example.com"},
	}
}

// ExecuteRequestAndParse executes an HTTP request on the given router and
// parses the JSON response body into a generic map.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}
