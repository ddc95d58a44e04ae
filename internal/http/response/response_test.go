package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/bucketlist/internal/domain"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestFromDomainError_StatusMapping(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			"validation is 400",
			domain.NewValidationError("title", "required", "required"),
			http.StatusBadRequest, "VALIDATION_ERROR",
		},
		{
			"authentication is 401",
			domain.NewAuthenticationError("", domain.AuthReasonInvalidCredentials),
			http.StatusUnauthorized, "UNAUTHORIZED",
		},
		{
			"insufficient permissions is 403",
			domain.NewAuthenticationError("revoked", domain.AuthReasonInsufficientPermissions),
			http.StatusForbidden, "FORBIDDEN",
		},
		{
			"not found is 404",
			domain.NewNotFoundError("item", "x", ""),
			http.StatusNotFound, "NOT_FOUND",
		},
		{
			"conflict is 409",
			domain.NewConflictError("api_key", "", nil),
			http.StatusConflict, "CONFLICT",
		},
		{
			"business rule is 422",
			domain.NewBusinessRuleError("max_items", "limit reached", nil),
			http.StatusUnprocessableEntity, "BUSINESS_RULE_VIOLATION",
		},
		{
			"network is 502",
			domain.NewNetworkError("refused", 0, ""),
			http.StatusBadGateway, "UPSTREAM_UNAVAILABLE",
		},
		{
			"database is 500",
			domain.NewDatabaseError("deadlock", "40P01", "Update"),
			http.StatusInternalServerError, "INTERNAL_ERROR",
		},
		{
			"unknown is 500",
			errors.New("boom"),
			http.StatusInternalServerError, "INTERNAL_ERROR",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/items", nil)

			FromDomainError(rec, req, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantCode, decodeError(t, rec).Error.Code)
		})
	}
}

func TestFromDomainError_SeesThroughCompositeFailures(t *testing.T) {
	// A dashboard fan-out failure wraps its cause; the response reflects
	// the underlying variant, not a generic 500... unless the cause is
	// itself internal.
	cause := domain.NewDatabaseError("connection reset", "08006", "GetUserStats")
	composite := domain.NewApplicationError("dashboard load failed", cause, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)

	FromDomainError(rec, req, composite)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestFromDomainError_InternalHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/items", nil)

	FromDomainError(rec, req, domain.NewDatabaseError("password=hunter2 rejected", "28P01", "FindAll"))

	body := decodeError(t, rec)
	assert.Equal(t, "an internal error occurred", body.Error.Message)
	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestValidationFailed_CarriesFieldDetail(t *testing.T) {
	rec := httptest.NewRecorder()

	ValidationFailed(rec, "title", "must be 200 characters or less")

	body := decodeError(t, rec)
	require.Len(t, body.Error.Details, 1)
	assert.Equal(t, "title", body.Error.Details[0].Field)
}
