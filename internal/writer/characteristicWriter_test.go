package writer_test

import (
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/oantby/homebridge-api/internal/models"
	"github.com/oantby/homebridge-api/internal/writer"
	"github.com/oantby/homebridge-api/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newWriter(t *testing.T, api *mocks.MockWriterHubApi) (*writer.CharacteristicWriter, *[]time.Duration) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})
	w := writer.NewCharacteristicWriter(logger, api, 3)
	sleeps := []time.Duration{}
	w.SetSleep(func(d time.Duration) { sleeps = append(sleeps, d) })
	return w, &sleeps
}

func Test_Write(t *testing.T) {

	t.Run("sends a single characteristic update", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockWriterHubApi(t)
		w, sleeps := newWriter(t, api)

		var sent models.CharacteristicWriteRequest
		api.On("PUT", "characteristics", mock.Anything).
			Run(func(args mock.Arguments) {
				_ = json.Unmarshal(args.Get(1).([]byte), &sent)
			}).
			Return(204, nil).Once()

		outcome := w.Write(7, 10, true)

		assert.Equal(t, models.WriteSucceeded, outcome)
		assert.Empty(t, *sleeps)
		assert.Len(t, sent.Characteristics, 1)
		assert.Equal(t, 7, sent.Characteristics[0].Aid)
		assert.Equal(t, 10, sent.Characteristics[0].Iid)
		assert.Equal(t, true, sent.Characteristics[0].Value)
	})

	for _, status := range []int{200, 204, 207} {
		status := status
		t.Run(fmt.Sprintf("%d: succeeds immediately", status), func(t *testing.T) {
			t.Parallel()
			api := mocks.NewMockWriterHubApi(t)
			w, sleeps := newWriter(t, api)
			api.On("PUT", "characteristics", mock.Anything).Return(status, nil).Once()

			assert.True(t, w.Write(1, 2, 50).OK())
			assert.Empty(t, *sleeps)
		})
	}

	t.Run("503, 503, 200: succeeds after two backoff sleeps", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockWriterHubApi(t)
		w, sleeps := newWriter(t, api)
		api.On("PUT", "characteristics", mock.Anything).Return(503, nil).Twice()
		api.On("PUT", "characteristics", mock.Anything).Return(200, nil).Once()

		outcome := w.Write(1, 2, 21.5)

		assert.Equal(t, models.WriteSucceeded, outcome)
		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *sleeps)
		api.AssertNumberOfCalls(t, "PUT", 3)
	})

	t.Run("404: fails immediately without retrying", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockWriterHubApi(t)
		w, sleeps := newWriter(t, api)
		api.On("PUT", "characteristics", mock.Anything).Return(404, nil).Once()

		outcome := w.Write(1, 2, 1)

		assert.Equal(t, models.WriteRejected, outcome)
		assert.False(t, outcome.OK())
		assert.Empty(t, *sleeps)
		api.AssertNumberOfCalls(t, "PUT", 1)
	})

	t.Run("server errors on every attempt: exhausted, no sleep after the last attempt", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockWriterHubApi(t)
		w, sleeps := newWriter(t, api)
		api.On("PUT", "characteristics", mock.Anything).Return(500, nil).Times(3)

		outcome := w.Write(1, 2, 1)

		assert.Equal(t, models.WriteExhausted, outcome)
		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *sleeps)
	})

	t.Run("transport errors are retried", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockWriterHubApi(t)
		w, sleeps := newWriter(t, api)
		api.On("PUT", "characteristics", mock.Anything).Return(0, fmt.Errorf("connection refused")).Once()
		api.On("PUT", "characteristics", mock.Anything).Return(200, nil).Once()

		assert.Equal(t, models.WriteSucceeded, w.Write(1, 2, 1))
		assert.Equal(t, []time.Duration{time.Second}, *sleeps)
	})
}

func Test_WriteAttempts(t *testing.T) {

	t.Run("backoff doubles with each attempt", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockWriterHubApi(t)
		w, sleeps := newWriter(t, api)
		api.On("PUT", "characteristics", mock.Anything).Return(502, nil).Times(5)

		outcome := w.WriteAttempts(1, 2, 1, 5)

		assert.Equal(t, models.WriteExhausted, outcome)
		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second}, *sleeps)
	})

	t.Run("doubling is not capped after many attempts", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockWriterHubApi(t)
		w, sleeps := newWriter(t, api)
		api.On("PUT", "characteristics", mock.Anything).Return(503, nil).Times(15)

		outcome := w.WriteAttempts(1, 2, 1, 15)

		assert.Equal(t, models.WriteExhausted, outcome)
		expected := []time.Duration{}
		for i := 0; i < 14; i++ {
			expected = append(expected, time.Duration(1<<i)*time.Second)
		}
		assert.Equal(t, expected, *sleeps)
	})

	t.Run("fewer than one attempt is treated as one", func(t *testing.T) {
		t.Parallel()
		api := mocks.NewMockWriterHubApi(t)
		w, sleeps := newWriter(t, api)
		api.On("PUT", "characteristics", mock.Anything).Return(503, nil).Once()

		assert.Equal(t, models.WriteExhausted, w.WriteAttempts(1, 2, 1, 0))
		assert.Empty(t, *sleeps)
	})
}
