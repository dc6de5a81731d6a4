// Package logger provides structured logging on top of log/slog.
//
// Loggers write JSON and run every record through a [LogHandlerDecorator],
// which adds attributes pulled from the context of the log call:
//
//	log := logger.New(logger.LocaleExtractor)
//
//	ctx := logger.WithLocale(context.Background(), "de-AT")
//	log.WarnContext(ctx, "message fell back to key", logger.Key("common.greeting"))
//	// {"level":"WARN","msg":"message fell back to key","key":"common.greeting","locale":"de-AT"}
//
// [Err] expands icu compile and format errors into an "error" group with
// their stable code, so log queries can filter on error.code:
//
//	log.Warn("compile failed", logger.Err(err))
//	// {"error":{"code":"MISSING_OTHER_CLAUSE","message":"...","line":1,"column":4}}
//
// [NewNope] returns a logger that discards everything and is the default for
// packages that accept an optional *slog.Logger.
package logger
