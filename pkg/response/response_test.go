package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/medico-api/pkg/apperror"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusOf(apperror.KindValidation))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(apperror.KindUnauthenticated))
	assert.Equal(t, http.StatusForbidden, StatusOf(apperror.KindForbidden))
	assert.Equal(t, http.StatusNotFound, StatusOf(apperror.KindNotFound))
	assert.Equal(t, http.StatusServiceUnavailable, StatusOf(apperror.KindUnavailable))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(apperror.KindStore))
}

func run(t *testing.T, err error) (*httptest.ResponseRecorder, *test.Hook) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger, hook := test.NewNullLogger()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("request_id", "req-1")
	FromError(c, logger, err)
	return w, hook
}

func TestFromErrorClientKinds(t *testing.T) {
	w, hook := run(t, apperror.Forbidden("Access denied"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Access denied", body.Error)
	assert.Equal(t, "req-1", body.RequestID)
	assert.Empty(t, hook.AllEntries())
}

func TestFromErrorHidesStoreCause(t *testing.T) {
	w, hook := run(t, apperror.Store("Failed to fetch", errors.New("connection refused")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestFromErrorUnclassified(t *testing.T) {
	w, _ := run(t, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestKindOf(t *testing.T) {
	wrapped := errors.Join(errors.New("ctx"), apperror.NotFound("x"))
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(wrapped))
	assert.Equal(t, apperror.KindStore, apperror.KindOf(errors.New("plain")))
}

func TestFromErrorWrapped(t *testing.T) {
	w, hook := run(t, fmt.Errorf("get appointment: %w", apperror.NotFound("Appointment not found")))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Appointment not found")
	assert.Empty(t, hook.AllEntries())
}
