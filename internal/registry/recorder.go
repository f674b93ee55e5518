package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/weiawesome/typedid/audit"
	"github.com/weiawesome/typedid/internal/config"
	"github.com/weiawesome/typedid/pkg/database"
	pkglog "github.com/weiawesome/typedid/pkg/log"
	"github.com/weiawesome/typedid/pkg/pubsub"
	"github.com/weiawesome/typedid/pkg/storage"
)

// BuildRecorder connects the audit sinks named in cfg. The returned close
// function releases their connections.
func BuildRecorder(ctx context.Context, cfg config.AuditConfig, logger zerolog.Logger) (*audit.Recorder, func() error, error) {
	var (
		sinks   []audit.Sink
		closers []func() error
	)
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	for _, name := range cfg.Sinks {
		switch name {
		case config.SinkLog:
			sinks = append(sinks, audit.NewLogSink(logger))

		case config.SinkRedis:
			ps, err := pubsub.NewRedisPubSub(cfg.Redis)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			closers = append(closers, ps.Close)
			sinks = append(sinks, audit.NewPubSubSink(ps))

		case config.SinkDatabase:
			db, err := database.New(&cfg.Database)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			sqlDB, err := db.DB()
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
			}
			closers = append(closers, sqlDB.Close)
			sink, err := audit.NewGormSink(db)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			sinks = append(sinks, sink)

		case config.SinkArchive:
			store, err := storage.New(ctx, cfg.Archive.Storage)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			sinks = append(sinks, audit.NewArchiveSink(store, cfg.Archive.Prefix))

		default:
			closeAll()
			return nil, nil, fmt.Errorf("unknown audit sink %q", name)
		}
		logger.Debug().Str(pkglog.FieldSink, name).Msg("audit sink initialized")
	}

	return audit.NewRecorder(sinks...), closeAll, nil
}
