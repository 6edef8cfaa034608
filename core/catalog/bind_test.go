package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderdata/wanderdata/core/catalog"
	"github.com/wanderdata/wanderdata/core/domain"
)

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		expected  []string
	}{
		{name: "none", statement: "SELECT 1", expected: []string{}},
		{name: "single", statement: "WHERE s = %(status)s", expected: []string{"status"}},
		{name: "repeated", statement: "%(a)s %(b)s %(a)s", expected: []string{"a", "b"}},
		{name: "percent literal ignored", statement: "'TOP_20%' = %(x)s", expected: []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, catalog.Placeholders(tt.statement))
		})
	}
}

func TestBind(t *testing.T) {
	def := &domain.QueryDefinition{
		Name:      "q",
		Statement: "SELECT * FROM b WHERE status = %(status)s AND city = %(city)s OR status = %(status)s",
		Params: []domain.ParamDefinition{
			{Name: "status", Default: domain.StatusConfirmed},
			{Name: "city", Default: "Lisbon"},
		},
	}

	tests := []struct {
		name         string
		params       map[string]string
		expectedArgs []any
	}{
		{
			name:         "defaults fill missing params",
			params:       nil,
			expectedArgs: []any{domain.StatusConfirmed, "Lisbon"},
		},
		{
			name:         "supplied values win",
			params:       map[string]string{"status": domain.StatusCancelled, "city": "Porto"},
			expectedArgs: []any{domain.StatusCancelled, "Porto"},
		},
		{
			name:         "unknown params dropped",
			params:       map[string]string{"limit": "10", "status": domain.StatusTicketed},
			expectedArgs: []any{domain.StatusTicketed, "Lisbon"},
		},
		{
			name:         "empty value falls back to default",
			params:       map[string]string{"status": ""},
			expectedArgs: []any{domain.StatusConfirmed, "Lisbon"},
		},
		{
			name:         "unrecognized status passes through",
			params:       map[string]string{"status": "ARCHIVED"},
			expectedArgs: []any{"ARCHIVED", "Lisbon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statement, args, err := catalog.Bind(def, tt.params)
			require.NoError(t, err)
			assert.Equal(t, "SELECT * FROM b WHERE status = $1 AND city = $2 OR status = $1", statement)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestBind_NoInterpolation(t *testing.T) {
	def, err := catalog.MustDefault().Get("booking_item")
	require.NoError(t, err)

	hostile := "CONFIRMED'; DROP TABLE travel.hotels; --"
	statement, args, err := catalog.Bind(def, map[string]string{"status": hostile})
	require.NoError(t, err)
	assert.NotContains(t, statement, hostile)
	assert.NotContains(t, statement, "%(")
	assert.Contains(t, statement, "b.status = $1")
	assert.Equal(t, []any{hostile}, args)
}

func TestBind_Parameterless(t *testing.T) {
	def, err := catalog.MustDefault().Get("events")
	require.NoError(t, err)

	statement, args, err := catalog.Bind(def, map[string]string{"status": "CANCELLED"})
	require.NoError(t, err)
	assert.Equal(t, def.Statement, statement)
	assert.Empty(t, args)
	assert.False(t, strings.Contains(statement, "$1"))
}

func TestResolve(t *testing.T) {
	def, err := catalog.MustDefault().Get("revenue_performance")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"status": "CONFIRMED"}, catalog.Resolve(def, map[string]string{"foo": "bar"}))
	assert.Equal(t, map[string]string{"status": "TICKETED"}, catalog.Resolve(def, map[string]string{"status": "TICKETED"}))
}
