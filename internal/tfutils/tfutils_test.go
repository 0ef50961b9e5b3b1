package tfutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeframe(t *testing.T) {
	tests := []struct {
		timeframe string
		expected  time.Duration
		wantErr   bool
	}{
		{"1m", time.Minute, false},
		{"15m", 15 * time.Minute, false},
		{"4h", 4 * time.Hour, false},
		{"1d", 24 * time.Hour, false},
		{"2m", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.timeframe, func(t *testing.T) {
			d, err := ParseTimeframe(tt.timeframe)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, IsValidTimeframe(tt.timeframe))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, d)
			assert.True(t, IsValidTimeframe(tt.timeframe))
		})
	}
}

func TestTimeframeMinutes(t *testing.T) {
	assert.Equal(t, 60, TimeframeMinutes("1h"))
	assert.Equal(t, 1440, TimeframeMinutes("1d"))
	assert.Equal(t, 0, TimeframeMinutes("bogus"))
}

func TestGetSupportedTimeframes(t *testing.T) {
	assert.Equal(t, []string{"1m", "5m", "15m", "30m", "1h", "4h", "1d"}, GetSupportedTimeframes())
}
