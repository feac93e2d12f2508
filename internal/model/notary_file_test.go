package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusDraft, StatusPending, true},
		{StatusDraft, StatusCancelled, true},
		{StatusDraft, StatusCompleted, false}, // cannot skip pending
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusDraft, false}, // no going back
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusDraft, false},
		{StatusCancelled, StatusCompleted, false},
		{StatusDraft, StatusDraft, false},
		{StatusPending, StatusPending, false},
		{"bogus", StatusPending, false},
		{StatusDraft, "bogus", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusDraft, StatusPending, StatusCompleted, StatusCancelled} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus("Draft")) // case-sensitive
}

func TestValidPaymentStatus(t *testing.T) {
	for _, s := range []string{PaymentUnpaid, PaymentPartial, PaymentPaid} {
		assert.True(t, ValidPaymentStatus(s), s)
	}
	assert.False(t, ValidPaymentStatus("refunded"))
	assert.False(t, ValidPaymentStatus(""))
}
