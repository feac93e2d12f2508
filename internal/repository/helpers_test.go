package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateString(t *testing.T) {
	// The driver hands DATE columns over as midnight time.Time values;
	// responses and write-backs must carry plain YYYY-MM-DD.
	d := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	got := dateString(sql.NullTime{Time: d, Valid: true})
	require.NotNil(t, got)
	assert.Equal(t, "2025-06-01", *got)

	assert.Nil(t, dateString(sql.NullTime{}))
}
