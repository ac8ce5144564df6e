package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"teamup-board-api/internal/response"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// assertAppErrorCode checks that err is an *response.AppError with the given code
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *response.AppError
	require.True(t, errors.As(err, &appErr), "expected *response.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code, appErr.Message)
}

func strPtr(s string) *string { return &s }
