package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeIDs(t *testing.T) {
	// A repeated party or asset id must not reach the join-table
	// inserts, where it would collide with the primary key.
	assert.Equal(t, []uint64{1}, dedupeIDs([]uint64{1, 1}))
	assert.Equal(t, []uint64{3, 1, 2}, dedupeIDs([]uint64{3, 1, 3, 2, 1}))
	assert.Equal(t, []uint64{5}, dedupeIDs([]uint64{5}))
	assert.Nil(t, dedupeIDs(nil))
	assert.Empty(t, dedupeIDs([]uint64{}))
}
