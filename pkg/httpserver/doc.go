// Package httpserver runs an http.Handler with configurable timeouts and a
// context-driven graceful shutdown.
//
//	srv := httpserver.New(
//		httpserver.WithAddr(":8080"),
//		httpserver.WithShutdownTimeout(10*time.Second),
//		httpserver.WithLogger(log),
//	)
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	err := srv.Run(ctx, router)
//
// Run binds the listener before serving, so an address in use is reported
// immediately as ErrStart. When ctx ends, in-flight requests get the shutdown
// timeout to finish; running out of time yields ErrShutdown.
//
// HealthCheckHandler builds liveness and readiness probes from Check funcs.
package httpserver
