package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDomainError(t *testing.T) {
	assert.True(t, IsDomainError(ErrTaskNotFound, ErrCodeNotFound))
	assert.False(t, IsDomainError(ErrTaskNotFound, ErrCodeForbidden))
	assert.False(t, IsDomainError(errors.New("plain"), ErrCodeNotFound))

	wrapped := fmt.Errorf("list tasks: %w", ErrTaskNotFound)
	assert.True(t, IsDomainError(wrapped, ErrCodeNotFound))
}

func TestErrorString(t *testing.T) {
	plain := NewError(ErrCodeInvalid, "invalid payload")
	assert.Equal(t, "invalid payload", plain.Error())

	wrapped := WrapError(ErrCodeUnavailable, "task store unavailable", errors.New("connection refused"))
	assert.Equal(t, "task store unavailable: connection refused", wrapped.Error())
	assert.Equal(t, "connection refused", wrapped.Unwrap().Error())
}

func TestSentinelIdentity(t *testing.T) {
	assert.ErrorIs(t, fmt.Errorf("login: %w", ErrInvalidCredentials), ErrInvalidCredentials)
	assert.NotErrorIs(t, ErrTokenExpired, ErrTokenInvalid)
}
