package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(month time.Month, day int) time.Time {
	return time.Date(2026, month, day, 10, 0, 0, 0, time.UTC)
}

func TestCurrentAcademicYear(t *testing.T) {
	assert.Equal(t, "2026", CurrentAcademicYear(date(time.June, 15)))
}

func TestCurrentTermBoundaries(t *testing.T) {
	assert.Equal(t, "Term 1", CurrentTerm(date(time.January, 1)))
	assert.Equal(t, "Term 1", CurrentTerm(date(time.April, 30)))
	assert.Equal(t, "Term 2", CurrentTerm(date(time.May, 1)))
	assert.Equal(t, "Term 2", CurrentTerm(date(time.August, 31)))
	assert.Equal(t, "Term 3", CurrentTerm(date(time.September, 1)))
	assert.Equal(t, "Term 3", CurrentTerm(date(time.December, 31)))
}

func TestGenerateReceiptNumberFormat(t *testing.T) {
	got := GenerateReceiptNumber(time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC))

	assert.Regexp(t, `^RCP-20260310-\d{4}$`, got)
}

func TestGenerateVerificationCode(t *testing.T) {
	code := GenerateVerificationCode()

	assert.Len(t, code, 8)
	assert.Regexp(t, `^[0-9A-F]{8}$`, code)
	assert.NotEqual(t, code, GenerateVerificationCode())
}

func TestGateOperatingStatus(t *testing.T) {
	monday := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

	open := GateOperatingStatus(monday.Add(10 * time.Hour))
	assert.True(t, open.IsOpen)
	assert.Equal(t, "Open", open.Message)

	// 06:00 opens the gate, 17:00 closes it.
	assert.True(t, GateOperatingStatus(monday.Add(6*time.Hour)).IsOpen)
	assert.False(t, GateOperatingStatus(monday.Add(17*time.Hour)).IsOpen)

	early := GateOperatingStatus(monday.Add(5 * time.Hour))
	assert.False(t, early.IsOpen)
	assert.Equal(t, "Closed - Operating hours: 6:00 AM - 5:00 PM", early.Message)

	saturday := GateOperatingStatus(monday.AddDate(0, 0, 5).Add(10 * time.Hour))
	assert.False(t, saturday.IsOpen)
	assert.Equal(t, "Closed on weekends", saturday.Message)
}

func TestNormalizeSearchTerm(t *testing.T) {
	assert.Equal(t, "nyokabi", NormalizeSearchTerm("  Nyokabi "))
	assert.Equal(t, "ngugi", NormalizeSearchTerm("Ngũgĩ"))
	assert.Equal(t, "jose", NormalizeSearchTerm("José"))
}

func TestFormatTime12h(t *testing.T) {
	assert.Equal(t, "02:30 PM", FormatTime12h(time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, "09:05 AM", FormatTime12h(time.Date(2026, time.March, 10, 9, 5, 0, 0, time.UTC)))
}
