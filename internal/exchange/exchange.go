// Package exchange loads historical candles from remote markets.
package exchange

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/amirphl/trendline/internal/tfutils"
	"github.com/amirphl/trendline/internal/utils"
)

// retry wraps a function with retry logic for transient errors, using exponential backoff and error logging.
func retry(attempts int, delay time.Duration, fn func() error) error {
	backoff := delay
	var last error
	for i := 1; i <= attempts; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		last = err
		if i == attempts {
			break
		}
		utils.GetLogger().WithFields(logrus.Fields{
			"attempt": i,
			"of":      attempts,
			"backoff": backoff,
		}).WithError(err).Warn("exchange request failed")
		time.Sleep(backoff)
		// Exponential backoff, but cap at 5 minutes
		if backoff < 5*time.Minute {
			backoff *= 2
			if backoff > 5*time.Minute {
				backoff = 5 * time.Minute
			}
		}
	}
	return errors.Join(errors.New("all retry attempts failed"), last)
}

// NormalizeSymbol converts e.g. btc-usdt to BTCUSDT for Wallex API
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.ReplaceAll(symbol, "-", ""))
}

// NormalizedTimeframe maps a timeframe to a Wallex chart resolution: minutes below a day, "1D" for a day.
func NormalizedTimeframe(timeframe string) string {
	minutes := tfutils.TimeframeMinutes(timeframe)
	if minutes >= 1440 {
		return strconv.Itoa(minutes/1440) + "D"
	}
	return strconv.Itoa(minutes)
}
