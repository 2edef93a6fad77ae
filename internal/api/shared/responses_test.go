package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/keyring-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithJSON(w, r, http.StatusCreated, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"1"}`, w.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	log, buf := logger.GetTestLogger(t)

	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"client error logs at debug", http.StatusNotFound, "DEBUG"},
		{"server error logs at error", http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := WithTraceID(logger.WithLogger(context.Background(), log), "trace-1")
			r := httptest.NewRequest(http.MethodGet, "/v1/users", nil).WithContext(ctx)
			w := httptest.NewRecorder()

			cause := errors.New("dial postgres://keyring:hunter22@db/keyring failed")
			RespondWithErrorAndLog(w, r, tt.status, "Something failed", cause)

			assert.Equal(t, tt.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Code)
			assert.Equal(t, "Something failed", body.Message)
			assert.Equal(t, "trace-1", body.TraceID)
			assert.NotContains(t, w.Body.String(), "hunter22")

			entries, err := buf.Entries()
			require.NoError(t, err)
			require.NotEmpty(t, entries)
			last := entries[len(entries)-1]
			assert.Equal(t, tt.wantLevel, last["level"])
			assert.NotContains(t, last["error"], "hunter22")
		})
	}
}
