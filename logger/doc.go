// Package logger provides structured logging for paygate using zerolog.
//
// It supports JSON and console output, log level configuration and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(&cfg.Logging, "paygate").WithComponent("api")
//	log.Info("item registered", logger.Fields("item_uid", uid))
package logger
