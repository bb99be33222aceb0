package handler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatOrderNo(t *testing.T) {
	at := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "BAKE-20260831-00042", formatOrderNo("BAKE", 42, at))
	assert.Equal(t, "BAKE-20260831-00001", formatOrderNo("BAKE", 1, at))
	// Sequences past five digits widen instead of truncating.
	assert.Equal(t, "BAKE-20260831-123456", formatOrderNo("BAKE", 123456, at))
}

func TestIsDuplicateOrderNo(t *testing.T) {
	dup := errors.New("Error 1062 (23000): Duplicate entry 'BAKE-20260831-00042' for key 'orders.order_no'")
	assert.True(t, isDuplicateOrderNo(dup))

	// Duplicates on other unique columns must not trigger a retry.
	otherKey := errors.New("Error 1062 (23000): Duplicate entry 'a@b.com' for key 'customer_profiles.email'")
	assert.False(t, isDuplicateOrderNo(otherKey))

	assert.False(t, isDuplicateOrderNo(nil))
	assert.False(t, isDuplicateOrderNo(errors.New("connection refused")))
}
