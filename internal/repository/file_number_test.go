package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextFileNumber(t *testing.T) {
	cases := []struct {
		name string
		last string
		year int
		want string
	}{
		{"first of the year", "", 2025, "20250001"},
		{"increments sequence", "20250001", 2025, "20250002"},
		{"mid sequence", "20250137", 2025, "20250138"},
		{"keeps zero padding", "20250009", 2025, "20250010"},
		{"year rollover resets", "20259999", 2026, "20260001"},
		{"grows past four digits", "20259999", 2025, "202510000"},
		{"continues wide sequence", "202510000", 2025, "202510001"},
		{"garbage suffix restarts", "2025abcd", 2025, "20250001"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, NextFileNumber(c.last, c.year))
		})
	}
}

// lengthThenLexMax mirrors the allocation query's
// ORDER BY LENGTH(file_number) DESC, file_number DESC.
func lengthThenLexMax(numbers []string) string {
	max := ""
	for _, n := range numbers {
		if len(n) > len(max) || (len(n) == len(max) && n > max) {
			max = n
		}
	}
	return max
}

func TestFileNumberMaxPastFourDigits(t *testing.T) {
	// Lexicographic order alone ranks "20259999" above "202510000",
	// which would re-issue an existing number. Length-first ordering
	// must return the true maximum so the next number is fresh.
	existing := []string{"20259998", "20259999", "202510000"}
	max := lengthThenLexMax(existing)
	assert.Equal(t, "202510000", max)
	next := NextFileNumber(max, 2025)
	assert.Equal(t, "202510001", next)
	assert.NotContains(t, existing, next)

	// Crossing the boundary allocation by allocation stays distinct.
	numbers := []string{"20259998"}
	for i := 0; i < 4; i++ {
		n := NextFileNumber(lengthThenLexMax(numbers), 2025)
		assert.NotContains(t, numbers, n)
		numbers = append(numbers, n)
	}
	assert.Equal(t,
		[]string{"20259998", "20259999", "202510000", "202510001", "202510002"},
		numbers)
}

func TestGrowthPercentage(t *testing.T) {
	assert.Equal(t, 0, GrowthPercentage(0, 0))
	assert.Equal(t, 100, GrowthPercentage(5, 0)) // new activity from nothing
	assert.Equal(t, 100, GrowthPercentage(10, 5))
	assert.Equal(t, -50, GrowthPercentage(5, 10))
	assert.Equal(t, 0, GrowthPercentage(7, 7))
	assert.Equal(t, -100, GrowthPercentage(0, 4))
	assert.Equal(t, 33, GrowthPercentage(4, 3))
}
