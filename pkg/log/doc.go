// Package log provides bus transaction tracing for FRAM devices.
//
// This package defines the Logger interface and Event types for capturing
// every transaction a device handle issues on the two-wire bus. It is
// separate from operational logging (slog): a trace is a complete,
// machine-readable record of what went over the wire, useful when a
// device misbehaves in the field.
//
// # Basic Usage
//
// Attach a Logger to a device handle:
//
//	// For development: trace to console via slog
//	dev, _ := fram.New(cfg, fram.WithTracer(log.NewSlogAdapter(slog.Default())))
//
//	// For production: write a binary trace file
//	tracer, _ := log.NewFileLogger("/var/log/fram/bus.ftrace")
//
//	// Both: use MultiLogger
//	tracer := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileTracer,
//	)
//
// # Event Kinds
//
//   - Transfer: one transmit or receive on the bus (TransferEvent)
//   - State: handle lifecycle (StateChangeEvent)
//   - Error: transport, timeout and lock failures (ErrorEventData)
//
// # File Format
//
// Trace files are a stream of CBOR-encoded events with integer keys,
// conventionally named with the .ftrace extension. FileLogger buffers
// writes, so a trace is complete only after Flush or Close; Reader reports
// a partially written final event as ErrTruncated. The fram-log CLI tool
// views and summarizes traces.
package log
