// Package logger provides structured logging for pipers using zerolog.
//
// It supports JSON and console output formats, log level configuration,
// and component-scoped loggers with structured fields. Pipeline stages
// log spawn and wiring events at debug level through a component logger,
// so a quiet default level keeps the library silent in host programs.
//
// # Usage
//
//	log := logger.WithComponent("pipe")
//	log.Debug("stage spawned", logger.Fields(logger.FieldBinary, "grep"))
package logger
