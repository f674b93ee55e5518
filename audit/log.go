package audit

import (
	"context"

	"github.com/rs/zerolog"

	pkglog "github.com/weiawesome/typedid/pkg/log"
)

// LogSink writes records as audit log entries.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Write(_ context.Context, rec Record) error {
	s.logger.Info().
		Str(pkglog.FieldLogType, pkglog.LogTypeAudit).
		EmbedObject(rec).
		Msg("id minted")
	return nil
}
