package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cinetick/cinetick/internal/inventory"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// Fields whose values differ between runs are dropped before comparing
// response bodies.
var keysToIgnore = map[string]struct{}{
	"timestamp":     {},
	"requestId":     {},
	"createdAt":     {},
	"reference":     {},
	"paymentRef":    {},
	"holdExpiresAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanValue(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanValue(v any) {
	switch val := v.(type) {
	case map[string]any:
		for k := range val {
			if _, ok := keysToIgnore[k]; ok {
				delete(val, k)
				continue
			}
			cleanValue(val[k])
		}
	case []any:
		for _, item := range val {
			cleanValue(item)
		}
	}
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	sql, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), string(sql))
	require.NoError(t, err)
}

// guestSessionCookies establishes a fresh guest session through the router
// and returns its cookie for reuse across a scenario flow.
func guestSessionCookies(t testing.TB, testApp *TestApp) []*http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	testApp.App.Routes().ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "expected the guest session cookie to be set")

	return cookies
}

func lockSeatInCache(t testing.TB, client *redis.Client, showtimeID, seatID int, sessionID string) {
	t.Helper()

	ctx := context.Background()

	err := client.Set(ctx, inventory.LockKey(showtimeID, seatID), sessionID, 10*time.Minute).Err()
	require.NoError(t, err)

	err = client.SAdd(ctx, inventory.LockSetKey(showtimeID), seatID).Err()
	require.NoError(t, err)
}

// toggleSeat drives the toggle endpoint for flows that need seats held
// before the request under test runs.
func toggleSeat(t testing.TB, testApp *TestApp, cookies []*http.Cookie, showtimeID, seatID int) {
	t.Helper()

	body := strings.NewReader(fmt.Sprintf(`{"seatId": %d}`, seatID))
	url := fmt.Sprintf("/showtimes/%d/selection/seats", showtimeID)

	req, err := prepareRequest(http.MethodPost, url, body, nil, cookies)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	testApp.App.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, "toggling seat %d: %s", seatID, rec.Body.String())
}

func flushCache(t testing.TB, client *redis.Client) {
	t.Helper()
	require.NoError(t, client.FlushAll(context.Background()).Err())
}

// seedBaseState resets both stores to the canonical fixtures: one movie,
// one theater with two halls, eight seats in hall 1A and two showtimes.
func seedBaseState(t testing.TB, app *TestApp) {
	t.Helper()

	executeSQLFile(t, app.DB, "testdata/seed_down.sql")
	executeSQLFile(t, app.DB, "testdata/seed_up.sql")
	flushCache(t, app.RedisClient)
}
