package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstantEquals(t *testing.T) {
	assert.True(t, NewIntConstant(5).Equals(NewIntConstant(5)))
	assert.False(t, NewIntConstant(5).Equals(NewIntConstant(6)))
	assert.True(t, NewStringConstant("a").Equals(NewStringConstant("a")))
	assert.False(t, NewStringConstant("a").Equals(NewStringConstant("b")))

	// Mismatched types are never equal.
	assert.False(t, NewIntConstant(5).Equals(NewStringConstant("5")))
}

func TestConstantCompareTo(t *testing.T) {
	assert.Equal(t, -1, NewIntConstant(1).CompareTo(NewIntConstant(2)))
	assert.Equal(t, 0, NewIntConstant(2).CompareTo(NewIntConstant(2)))
	assert.Equal(t, 1, NewIntConstant(3).CompareTo(NewIntConstant(2)))

	// ISO dates as strings order chronologically.
	assert.Equal(t, -1, NewStringConstant("2025-01-01").CompareTo(NewStringConstant("2025-06-15")))
	assert.Equal(t, 1, NewStringConstant("2026-01-01").CompareTo(NewStringConstant("2025-12-31")))
}

func TestConstantString(t *testing.T) {
	assert.Equal(t, "42", NewIntConstant(42).String())
	assert.Equal(t, "pending", NewStringConstant("pending").String())
}
