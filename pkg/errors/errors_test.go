package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeRateLimit, status: http.StatusTooManyRequests, publicMsg: "rate limit exceeded", retryable: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		assert.Equal(t, tt.status, meta.HTTPStatus, "status for %s", tt.code)
		assert.Equal(t, tt.publicMsg, meta.PublicMessage, "public message for %s", tt.code)
		assert.Equal(t, tt.retryable, meta.Retryable, "retryable for %s", tt.code)
		assert.Equal(t, tt.detailsOK, meta.DetailsAllowed, "details for %s", tt.code)
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_NEW"))
	assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Wrap(CodeDependency, cause, "query orders")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, CodeDependency, err.Code())
	assert.Contains(t, err.Error(), "connection refused")

	outer := fmt.Errorf("daily trend: %w", err)
	assert.True(t, IsCode(outer, CodeDependency))
	assert.False(t, IsCode(outer, CodeValidation))
}

func TestWrapNilCauseBehavesLikeNew(t *testing.T) {
	err := Wrap(CodeValidation, nil, "bad date")
	assert.Nil(t, err.Unwrap())
	assert.Equal(t, "VALIDATION_ERROR: bad date", err.Error())
}

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodeNotFound, "no entry").WithDetails(map[string]any{"field": "x"})
	got := As(fmt.Errorf("wrapped: %w", err))
	require.NotNil(t, got)
	assert.Equal(t, CodeNotFound, got.Code())
	assert.NotNil(t, got.Details())
	assert.Nil(t, As(nil))
	assert.Nil(t, As(stdErrors.New("plain")))
}

func TestDumpCollectsChainAndPostgresFields(t *testing.T) {
	pqErr := &pq.Error{Code: "57P01", Message: "terminating connection", Table: "orders"}
	err := Wrap(CodeDependency, fmt.Errorf("select orders: %w", pqErr), "query orders")

	dump := Dump(err)
	assert.Equal(t, CodeDependency, dump.Code)
	assert.Len(t, dump.Chain, 3)
	assert.Equal(t, "57P01", dump.PGCode)
	assert.Equal(t, "orders", dump.PGTable)
	assert.Equal(t, "terminating connection", dump.PGMessage)

	assert.Equal(t, ErrorDump{}, Dump(nil))
}
