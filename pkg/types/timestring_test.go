package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = NewTimeStringFromString("9:30am")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeStringComparison(t *testing.T) {
	early := TimeString("08:00")
	late := TimeString("18:30")

	assert.True(t, early.IsBefore(late))
	assert.False(t, late.IsBefore(early))
	assert.True(t, late.IsAfter(early))
	assert.False(t, early.IsBefore(early))
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := TimeString("10:00")

	got, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), got)

	// wraps around midnight
	got, err = TimeString("23:30").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:30"), got)
}

func TestTimeStringMinutes(t *testing.T) {
	m, err := TimeString("01:45").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 105, m)
}

func TestNewTimeString(t *testing.T) {
	at := time.Date(2025, 1, 15, 18, 5, 59, 0, time.UTC)
	assert.Equal(t, TimeString("18:05"), NewTimeString(at))
}

func TestTimeStringValidate(t *testing.T) {
	assert.NoError(t, TimeString("00:00").Validate())
	assert.Error(t, TimeString("").Validate())
	assert.Error(t, TimeString("12h30").Validate())
	assert.True(t, TimeString("").IsZero())
}
