package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ops@vigilo.example"))
	assert.True(t, IsValidEmail("first.last+tag@sub.domain.co"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0190163d-8ba5-7c6e-89b1-6a0f2a8c3b11"))
	// v4 is rejected, ids are UUIDv7
	assert.False(t, IsValidUUID("7f2a9a6e-4f3b-4f3b-9b1a-3c5d7e9f1a2b"))
	assert.False(t, IsValidUUID("nope"))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2025-03-17")
	assert.True(t, ok)
	assert.Equal(t, 17, date.Day())

	_, ok = IsValidDate("17-03-2025")
	assert.False(t, ok)
	_, ok = IsValidDate("2025-13-01")
	assert.False(t, ok)
}

func TestIsValidTimeOfDay(t *testing.T) {
	tod, ok := IsValidTimeOfDay("22:30")
	assert.True(t, ok)
	assert.Equal(t, 22, tod.Hour())
	assert.Equal(t, 30, tod.Minute())

	_, ok = IsValidTimeOfDay("24:00")
	assert.False(t, ok)
	_, ok = IsValidTimeOfDay("8am")
	assert.False(t, ok)
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "from", Message: "required"},
		{Field: "to", Message: "must not be before from"},
	}
	m := errs.ToMap()
	assert.Len(t, m, 2)
	assert.Equal(t, "required", m["from"])
	assert.Contains(t, errs.Error(), "to: must not be before from")
}
