package progress

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func fixedClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}
}

func TestProgress_Lifecycle(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewProgress()
	p.now = fixedClock(start, start.Add(2*time.Second), start.Add(3*time.Second))

	assert.Equal(t, ProgressStatusIdle, p.Info().Status)

	p.Begin("00-25MB.bin", 100)
	p.Add(50)

	info := p.Info()
	assert.Equal(t, ProgressStatusRunning, info.Status)
	assert.Equal(t, int64(50), info.Current)
	assert.Equal(t, 50.0, info.GetPercentage())
	assert.Equal(t, 2*time.Second, info.EstimatedETA)

	p.Finish(nil)
	info = p.Info()
	assert.Equal(t, ProgressStatusComplete, info.Status)
	assert.Zero(t, info.EstimatedETA)
}

func TestProgress_FinishWithError(t *testing.T) {
	p := NewProgress()
	p.Begin("x", 0)
	p.Add(10)
	p.Finish(errors.New("boom"))

	info := p.Info()
	assert.Equal(t, ProgressStatusError, info.Status)
	assert.Equal(t, "boom", info.Message)
	assert.Zero(t, info.GetPercentage())
}

func TestProgressInfo_GetPercentageCapped(t *testing.T) {
	info := ProgressInfo{Current: 150, Total: 100}
	assert.Equal(t, 100.0, info.GetPercentage())
}

func TestBarReporter(t *testing.T) {
	var out bytes.Buffer
	r := NewBarReporter(&out)

	r.Start("01-1MB.bin", 1024)
	r.Add(512)
	r.Add(512)
	r.Finish(nil)

	info := r.Info()
	assert.Equal(t, int64(1024), info.Current)
	assert.Equal(t, ProgressStatusComplete, info.Status)
	assert.Contains(t, out.String(), "01-1MB.bin")
}

func TestBarReporter_UnknownTotal(t *testing.T) {
	var out bytes.Buffer
	r := NewBarReporter(&out)

	r.Start("spin", 0)
	r.Add(10)
	r.Finish(errors.New("cut"))

	assert.Equal(t, ProgressStatusError, r.Info().Status)
	assert.Equal(t, int64(10), r.Info().Current)
}

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	r := NewLogReporter(logger, 0)

	r.Start("baseline-1MB.bin", 20)
	r.Add(20)
	r.Finish(nil)

	assert.Contains(t, buf.String(), "Transfer progress")
	assert.Contains(t, buf.String(), `"label":"baseline-1MB.bin"`)
	assert.Equal(t, ProgressStatusComplete, r.Info().Status)
}

func TestNopReporter(t *testing.T) {
	var r Reporter = NopReporter{}
	r.Start("x", 1)
	r.Add(1)
	r.Finish(nil)
}
