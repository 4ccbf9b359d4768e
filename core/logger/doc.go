// Package logger builds the service's zap logger.
//
// Production settings (json, sampled) are used unless the level is "debug",
// in which case the development config gives readable timestamps. Console
// format switches to colored level names and drops stack traces.
//
// # Request and Actor Fields
//
// HTTP handlers derive a request-scoped logger with WithRayID, which copies the
// ray id stored by the rayid middleware. Command handlers add the invoking
// operator with WithActor so denied or failed commands can be traced back.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	l := logger.WithActor(logger.WithRayID(log, c), actor)
//	l.Warn("Command denied")
package logger
