// Package logger is the zerolog-backed structured logger used by feedbackd
// and the voicefeedback CLI.
//
//	logging:
//	  level: info
//	  format: console   # or json
//	  output: stderr
//
// Entries take optional field maps built with Fields:
//
//	log := logger.WithComponent("capture")
//	log.Info("Recording started", logger.Fields(logger.FieldSessionID, id))
package logger
