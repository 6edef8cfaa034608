package logger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTag(t *testing.T) {
	assert.Nil(t, WithTag("serve", nil))

	cause := errors.New("bind: address already in use")
	err := WithTag("serve", cause)
	assert.Equal(t, cause.Error(), err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestWithTag_InnermostWins(t *testing.T) {
	inner := WithTag("sdk", errors.New("connection refused"))
	outer := WithTag("bulk", fmt.Errorf("fetch: %w", inner))
	assert.Equal(t, "sdk", ErrorTag(outer))
	assert.Equal(t, "fetch: connection refused", outer.Error())
}

func TestTagf(t *testing.T) {
	cause := errors.New("permission denied")
	err := Tagf("bulk", "write %s: %w", "events_data.csv", cause)
	require.Error(t, err)
	assert.Equal(t, "write events_data.csv: permission denied", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "bulk", ErrorTag(err))
}

func TestErrorTag(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil", err: nil, expected: DefaultTag},
		{name: "untagged", err: errors.New("x"), expected: DefaultTag},
		{name: "tagged", err: WithTag("connectors", errors.New("x")), expected: "connectors"},
		{name: "wrapped tagged", err: fmt.Errorf("start: %w", WithTag("http", errors.New("x"))), expected: "http"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorTag(tt.err))
		})
	}
}
