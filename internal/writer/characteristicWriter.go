package writer

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/oantby/homebridge-api/internal/constants"
	"github.com/oantby/homebridge-api/internal/models"
	backoff "gopkg.in/cenkalti/backoff.v1"
)

type hubApi interface {
	PUT(path string, body []byte) (int, error)
}

// CharacteristicWriter sends single characteristic updates to the hub,
// retrying server errors with exponential backoff.
type CharacteristicWriter struct {
	logger      *log.Logger
	hubApi      hubApi
	maxAttempts int

	sleep func(time.Duration)
}

func NewCharacteristicWriter(logger *log.Logger, hubApi hubApi, maxAttempts int) *CharacteristicWriter {
	return &CharacteristicWriter{
		logger:      logger,
		hubApi:      hubApi,
		maxAttempts: maxAttempts,
		sleep:       time.Sleep,
	}
}

// SetSleep replaces the function used to wait between attempts.
func (w *CharacteristicWriter) SetSleep(sleep func(time.Duration)) {
	w.sleep = sleep
}

func (w *CharacteristicWriter) Write(aid int, iid int, value any) models.WriteOutcome {
	return w.WriteAttempts(aid, iid, value, w.maxAttempts)
}

// WriteAttempts blocks until the write succeeds, is rejected, or maxAttempts
// attempts have failed. Values are absolute so repeating a write is harmless.
func (w *CharacteristicWriter) WriteAttempts(aid int, iid int, value any, maxAttempts int) models.WriteOutcome {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	body, err := json.Marshal(models.CharacteristicWriteRequest{
		Characteristics: []models.CharacteristicWrite{{Aid: aid, Iid: iid, Value: value}},
	})
	if err != nil {
		w.logger.Error("unable to encode characteristic write", "aid", aid, "iid", iid, "err", err)
		return models.WriteRejected
	}

	schedule := newBackoff()

	for attempt := 0; attempt < maxAttempts; attempt++ {
		status, err := w.hubApi.PUT(constants.PathCharacteristics, body)

		switch {
		case err != nil:
			w.logger.Warn("characteristic write failed", "aid", aid, "iid", iid, "attempt", attempt+1, "err", err)
		case isSuccess(status):
			w.logger.Debug("characteristic written", "aid", aid, "iid", iid, "value", value, "status", status)
			return models.WriteSucceeded
		case isClientError(status):
			// the request itself is bad, retrying won't help
			w.logger.Warn("characteristic write rejected", "aid", aid, "iid", iid, "status", status)
			return models.WriteRejected
		default:
			w.logger.Warn("characteristic write failed", "aid", aid, "iid", iid, "attempt", attempt+1, "status", status)
		}

		if attempt == maxAttempts-1 {
			break
		}
		w.sleep(schedule.NextBackOff())
	}

	w.logger.Error("giving up on characteristic write", "aid", aid, "iid", iid, "attempts", maxAttempts)
	return models.WriteExhausted
}

func isSuccess(status int) bool {
	return status == http.StatusOK || status == http.StatusNoContent || status == http.StatusMultiStatus
}

func isClientError(status int) bool {
	return status >= 400 && status < 500
}

// 1s, 2s, 4s, ... with no jitter. The interval and elapsed caps are set to
// the largest duration so the doubling is never clamped.
func newBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = time.Duration(math.MaxInt64)
	b.MaxElapsedTime = time.Duration(math.MaxInt64)
	b.Reset()
	return b
}
