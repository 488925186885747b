package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gameColumns = []string{"id", "outcome", "duration_seconds", "created_at"}

func serve(env *testEnv, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	env.server.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	env := newTestEnv(t, false)

	rec := serve(env, http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(0), body["sessions"])
	assert.Equal(t, false, body["db"])
}

func TestHandleListGames(t *testing.T) {
	testCases := []struct {
		Name           string
		Target         string
		ExpectedLimit  int32
		ExpectQuery    bool
		QueryErr       error
		ExpectedStatus int
	}{
		{Name: "default limit", Target: "/games", ExpectedLimit: 50, ExpectQuery: true, ExpectedStatus: http.StatusOK},
		{Name: "explicit limit", Target: "/games?limit=2", ExpectedLimit: 2, ExpectQuery: true, ExpectedStatus: http.StatusOK},
		{Name: "bad limit", Target: "/games?limit=abc", ExpectedStatus: http.StatusBadRequest},
		{Name: "negative limit", Target: "/games?limit=-3", ExpectedStatus: http.StatusBadRequest},
		{Name: "db down", Target: "/games", ExpectedLimit: 50, ExpectQuery: true, QueryErr: errors.New("conn refused"), ExpectedStatus: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			// given
			env := newTestEnv(t, true)
			if tc.ExpectQuery {
				exp := env.mock.ExpectQuery(regexp.QuoteMeta("FROM games")).WithArgs(tc.ExpectedLimit)
				if tc.QueryErr != nil {
					exp.WillReturnError(tc.QueryErr)
				} else {
					exp.WillReturnRows(sqlmock.NewRows(gameColumns).
						AddRow(uuid.New().String(), "WON", 75, time.Now()))
				}
			}

			// when
			rec := serve(env, http.MethodGet, tc.Target)

			// then
			assert.Equal(t, tc.ExpectedStatus, rec.Code)
			if tc.ExpectedStatus == http.StatusOK {
				var body struct {
					Games []json.RawMessage `json:"games"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Len(t, body.Games, 1)
			}
			assert.NoError(t, env.mock.ExpectationsWereMet())
		})
	}
}

func TestHandleDeleteGame(t *testing.T) {
	testCases := []struct {
		Name           string
		Id             string
		RowsAffected   int64
		ExpectExec     bool
		ExpectedStatus int
	}{
		{Name: "deleted", Id: uuid.NewString(), RowsAffected: 1, ExpectExec: true, ExpectedStatus: http.StatusNoContent},
		{Name: "missing", Id: uuid.NewString(), RowsAffected: 0, ExpectExec: true, ExpectedStatus: http.StatusNotFound},
		{Name: "malformed id", Id: "not-a-uuid", ExpectedStatus: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			env := newTestEnv(t, true)
			if tc.ExpectExec {
				env.mock.ExpectExec(regexp.QuoteMeta("DELETE FROM games")).
					WithArgs(sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, tc.RowsAffected))
			}

			rec := serve(env, http.MethodDelete, "/games/"+tc.Id)

			assert.Equal(t, tc.ExpectedStatus, rec.Code)
			assert.NoError(t, env.mock.ExpectationsWereMet())
		})
	}
}

func TestHistoryDisabledWithoutDb(t *testing.T) {
	env := newTestEnv(t, false)

	assert.Equal(t, http.StatusServiceUnavailable, serve(env, http.MethodGet, "/games").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(env, http.MethodDelete, "/games/"+uuid.NewString()).Code)
}
