package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "fundingpulse/internal/errors"
	"fundingpulse/internal/shared/testutil"
	api "fundingpulse/pkg/contracts/api/v1"
)

func validationFields(t *testing.T, err error) []string {
	t.Helper()
	var apiErr *apierrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", apiErr.ErrorCode)

	details, ok := apiErr.Details.(apierrors.ValidationErrors)
	require.True(t, ok)
	fields := make([]string, 0, len(details.Errors))
	for _, e := range details.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

func TestQueryValidator_Bind(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	v := NewQueryValidator(logger)

	t.Run("defaults kept when absent", func(t *testing.T) {
		req := api.NewStageQueryRequest()
		err := v.Bind(httptest.NewRequest(http.MethodGet, "/api/funding/query/stage", nil), req)
		require.NoError(t, err)
		assert.Equal(t, "Seed", req.Stage)
		assert.Equal(t, 10, req.Limit)
	})

	t.Run("values overwrite defaults", func(t *testing.T) {
		req := api.NewStageQueryRequest()
		err := v.Bind(httptest.NewRequest(http.MethodGet, "/x?stage=Series+A&limit=25", nil), req)
		require.NoError(t, err)
		assert.Equal(t, "Series A", req.Stage)
		assert.Equal(t, 25, req.Limit)
	})

	t.Run("non integer", func(t *testing.T) {
		req := api.NewTopGroupsRequest()
		err := v.Bind(httptest.NewRequest(http.MethodGet, "/x?k=ten", nil), req)
		assert.Equal(t, []string{"k"}, validationFields(t, err))
		assert.Equal(t, api.DefaultTopK, req.K)
	})

	t.Run("decode failure names the parameter", func(t *testing.T) {
		req := api.NewStageQueryRequest()
		err := v.Bind(httptest.NewRequest(http.MethodGet, "/x?stage=Seed&limit=many", nil), req)
		assert.Equal(t, []string{"limit"}, validationFields(t, err))

		err = v.Bind(httptest.NewRequest(http.MethodGet, "/x?limit=1.5", nil), api.NewStageQueryRequest())
		assert.Equal(t, []string{"limit"}, validationFields(t, err))
	})

	t.Run("empty values and unknown keys ignored", func(t *testing.T) {
		req := api.NewStageQueryRequest()
		err := v.Bind(httptest.NewRequest(http.MethodGet, "/x?stage=&limit=+&verbose=1&sort=desc", nil), req)
		require.NoError(t, err)
		assert.Equal(t, api.DefaultStage, req.Stage)
		assert.Equal(t, api.DefaultLimit, req.Limit)
	})

	t.Run("surrounding whitespace trimmed", func(t *testing.T) {
		req := api.NewRegionDealsRequest()
		require.NoError(t, v.Bind(httptest.NewRequest(http.MethodGet, "/x?region=+Europe+", nil), req))
		assert.Equal(t, "Europe", req.Region)
	})

	tests := []struct {
		name  string
		url   string
		dst   interface{}
		field string
	}{
		{"k below range", "/x?k=2", api.NewTopGroupsRequest(), "k"},
		{"k above range", "/x?k=21", api.NewTopGroupsRequest(), "k"},
		{"n zero", "/x?n=0", api.NewLargestRoundsRequest(), "n"},
		{"n above range", "/x?n=101", api.NewLargestRoundsRequest(), "n"},
		{"limit above range", "/x?limit=500", api.NewStageQueryRequest(), "limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Bind(httptest.NewRequest(http.MethodGet, tt.url, nil), tt.dst)
			assert.Equal(t, []string{tt.field}, validationFields(t, err))
		})
	}

	t.Run("bounds accepted", func(t *testing.T) {
		req := api.NewTopGroupsRequest()
		require.NoError(t, v.Bind(httptest.NewRequest(http.MethodGet, "/x?k=3", nil), req))
		assert.Equal(t, 3, req.K)
		require.NoError(t, v.Bind(httptest.NewRequest(http.MethodGet, "/x?k=20", nil), req))
		assert.Equal(t, 20, req.K)
	})

	t.Run("non pointer target", func(t *testing.T) {
		err := v.Bind(httptest.NewRequest(http.MethodGet, "/x", nil), api.TopGroupsRequest{})
		assert.Error(t, err)
	})
}
