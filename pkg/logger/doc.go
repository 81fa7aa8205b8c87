// Package logger builds *slog.Logger instances with functional options and
// provides attribute helpers that keep key names consistent across the
// notification packages.
//
// # Usage
//
//	log := logger.New(logger.WithDevelopment("notifyd"))
//	logger.SetAsDefault(log)
//
//	log.Error("listener failed",
//	    logger.Component("broadcast"),
//	    logger.SubscriptionID(id),
//	    logger.Error(err),
//	)
//
// # Configuration
//
//   - WithDevelopment / WithProduction / WithEnvironment: per-environment defaults.
//   - WithFormat / WithTextFormatter / WithJSONFormatter: output format.
//   - WithLevel: minimum level.
//   - WithOutput: destination writer.
//   - WithAttr: static attributes attached to every record.
//   - WithContextExtractors: attributes read from the record's context, such
//     as a request id. The extractors run through ContextHandler, which can
//     also wrap any other slog.Handler.
//
// Error and Errors return an empty slog.Attr for nil input, so callers can pass
// them unconditionally.
package logger
