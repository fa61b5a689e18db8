package logger

import (
	"github.com/aleister1102/mirrorcheck/internal/verifier"
	"github.com/rs/zerolog"
)

// PipelineLogger adapts zerolog to the logging capability the verification pipeline expects
type PipelineLogger struct {
	logger zerolog.Logger
}

var _ verifier.Logger = (*PipelineLogger)(nil)

// NewPipelineLogger wraps logger for use by verifier.Pipeline
func NewPipelineLogger(logger zerolog.Logger) *PipelineLogger {
	return &PipelineLogger{logger: logger.With().Str("component", "Pipeline").Logger()}
}

// Info logs an informational step
func (pl *PipelineLogger) Info(msg string, fields ...verifier.Field) {
	withFields(pl.logger.Info(), fields).Msg(msg)
}

// Error logs a failed step; err may be nil
func (pl *PipelineLogger) Error(msg string, err error, fields ...verifier.Field) {
	event := pl.logger.Error()
	if err != nil {
		event = event.Err(err)
	}
	withFields(event, fields).Msg(msg)
}

func withFields(event *zerolog.Event, fields []verifier.Field) *zerolog.Event {
	for _, f := range fields {
		event = event.Interface(f.Key, f.Value)
	}
	return event
}
