package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusnet-service/internal/domain"
)

func TestBuildListQueryNoFilter(t *testing.T) {
	t.Parallel()

	query, args := buildListQuery(domain.Filter{})
	assert.Empty(t, args)
	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY ts")
}

func TestBuildListQueryAllFilters(t *testing.T) {
	t.Parallel()

	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	query, args := buildListQuery(domain.Filter{
		Carrier:  domain.CarrierGlo,
		Location: "Library",
		From:     from,
		To:       to,
	})

	require.Len(t, args, 4)
	assert.Equal(t, "Glo", args[0])
	assert.Equal(t, "Library", args[1])
	assert.Contains(t, query, "carrier = $1")
	assert.Contains(t, query, "location = $2")
	assert.Contains(t, query, "ts >= $3")
	assert.Contains(t, query, "ts <= $4")
}

func TestBuildListQueryPlaceholdersStayOrdered(t *testing.T) {
	t.Parallel()

	// Location-only filter must start numbering at $1.
	query, args := buildListQuery(domain.Filter{Location: "ICT"})
	require.Len(t, args, 1)
	assert.Contains(t, query, "location = $1")
}

func TestNewRequiresDSN(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), Config{})
	require.Error(t, err)
}
