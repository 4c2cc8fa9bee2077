package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/zlog"
)

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	l := zlog.Logger
	h := Recovery(&l)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/specs", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLoggingPassesStatusThrough(t *testing.T) {
	l := zlog.Logger
	h := Logging(&l)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
