package fetch

import (
	"context"
	"time"

	"go.uber.org/zap"
)

var _ Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher and logs every call.
type LoggingFetcher struct {
	inner  Fetcher
	logger *zap.Logger
}

// NewLoggingFetcher decorates inner. A nil logger disables logging.
func NewLoggingFetcher(inner Fetcher, logger *zap.Logger) *LoggingFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingFetcher{inner: inner, logger: logger.Named("fetch")}
}

// Fetch delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, path string) (string, error) {
	start := time.Now()
	body, err := f.inner.Fetch(ctx, path)

	fields := []zap.Field{
		zap.String("path", path),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		f.logger.Warn("fetch failed", append(fields, zap.Error(err))...)
		return "", err
	}
	f.logger.Debug("fetch", append(fields, zap.Int("bytes", len(body)))...)
	return body, nil
}

// Unwrap returns the decorated fetcher.
func (f *LoggingFetcher) Unwrap() Fetcher { return f.inner }
