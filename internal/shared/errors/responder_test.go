package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/order-registry/internal/shared/domainerrors"
)

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/thing", func(c *gin.Context) {
		c.Set(RequestIDKey, "req-1")
		handler(c)
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/thing", nil))
	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestChainedResponder_MapsDomainKinds(t *testing.T) {
	responder := NewChainedResponder("", MapDomainError)
	cases := []struct {
		err    error
		status int
		typ    string
	}{
		{fmt.Errorf("%w: order 9", domainerrors.ErrEntityNotFound), http.StatusNotFound, TypeNotFound},
		{domainerrors.ErrIndexOutOfRange, http.StatusNotFound, TypeNotFound},
		{fmt.Errorf("wrapped: %w", domainerrors.ErrDuplicateEntity), http.StatusConflict, TypeConflict},
		{domainerrors.ErrInvalidDate, http.StatusBadRequest, TypeValidation},
		{domainerrors.ErrInvalidStage, http.StatusBadRequest, TypeValidation},
		{stderrors.New("boom"), http.StatusInternalServerError, TypeInternal},
	}
	for _, tc := range cases {
		rec, problem := serve(t, func(c *gin.Context) { responder.RespondError(c, tc.err) })
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		assert.Equal(t, tc.typ, problem.Type)
		assert.Equal(t, "/thing", problem.Instance)
		assert.Equal(t, "req-1", problem.Extensions["requestId"])
		assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	}
}

func TestResponder_PassesProblemDetailsThrough(t *testing.T) {
	responder := NewResponder("https://registry.example")
	rec, problem := serve(t, func(c *gin.Context) {
		responder.RespondError(c, fmt.Errorf("advance: %w", ErrInvalidState.WithDetail("completed")))
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "https://registry.example"+TypeInvalidState, problem.Type)
	assert.Equal(t, "completed", problem.Detail)
}

func TestWithExtensionDoesNotShareMaps(t *testing.T) {
	base := ErrConflict.WithExtension("a", 1)
	derived := base.WithExtension("b", 2)
	assert.Len(t, base.Extensions, 1)
	assert.Len(t, derived.Extensions, 2)
}
