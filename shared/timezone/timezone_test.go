package timezone_test

import (
	"testing"
	"time"

	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestNow(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.GetLocation(), now.Location())
}

func TestToAppTime(t *testing.T) {
	instant := time.Date(2024, 6, 1, 5, 0, 0, 0, time.UTC)

	converted := timezone.ToAppTime(instant)

	assert.True(t, converted.Equal(instant))
	assert.Equal(t, timezone.GetLocation(), converted.Location())
}

func TestFormatAndParse(t *testing.T) {
	parsed, err := timezone.Parse(time.DateTime, "2024-06-01 14:00:00")

	assert.NoError(t, err)
	assert.Equal(t, "2024-06-01 14:00:00", timezone.Format(parsed, time.DateTime))
}

func TestDateOf(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	late := time.Date(2024, 6, 1, 23, 30, 0, 0, jakarta)
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, timezone.DateOf(late).Equal(want))
	assert.True(t, timezone.DateOf(want).Equal(want), "calendar dates map to themselves")
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	assert.Zero(t, today.Hour())
	assert.Zero(t, today.Minute())
	assert.Equal(t, time.UTC, today.Location())
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		value   string
		want    time.Time
		wantErr bool
	}{
		{value: "2024-06-03", want: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)},
		{value: "2024-02-29", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{value: "03/06/2024", wantErr: true},
		{value: "2023-02-29", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := timezone.ParseDate(tt.value)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
		})
	}
}
