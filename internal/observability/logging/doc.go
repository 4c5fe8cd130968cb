// Package logging builds the service's slog loggers and carries them through
// request contexts.
//
// Output is JSON by default and human-readable text when LOG_FORMAT=text. When
// LOG_FILE is set, entries are also written to a size-rotated file.
//
//	logger := logging.NewLogger()
//	slog.SetDefault(logger)
//
//	func (s *Service) Get(ctx context.Context, id string) {
//	    logging.WithRequestID(ctx, s.Logger).Info("fetching article", slog.String("id", id))
//	}
package logging
