// Package utils provides shared application plumbing: structured logger
// construction and layered configuration loading.
package utils

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	unsupportedLogLevelTemplateConstant  = "unsupported log level %q"
	unsupportedLogFormatTemplateConstant = "unsupported log format %q"
)

// LogLevel selects the minimum severity emitted by created loggers.
type LogLevel string

// Supported log levels.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat selects the encoder used by created loggers.
type LogFormat string

// Supported log formats.
const (
	LogFormatStructured LogFormat = "structured"
	LogFormatConsole    LogFormat = "console"
)

// LoggerFactory builds zap loggers from level and format selections.
type LoggerFactory struct{}

// NewLoggerFactory returns a logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLogger builds a logger writing to standard error.
func (factory *LoggerFactory) CreateLogger(requestedLevel LogLevel, requestedFormat LogFormat) (*zap.Logger, error) {
	return factory.CreateLoggerWithSink(requestedLevel, requestedFormat, os.Stderr)
}

// CreateLoggerWithSink builds a logger writing to the provided sink.
func (factory *LoggerFactory) CreateLoggerWithSink(requestedLevel LogLevel, requestedFormat LogFormat, sink zapcore.WriteSyncer) (*zap.Logger, error) {
	atomicLevel, levelError := resolveLogLevel(requestedLevel)
	if levelError != nil {
		return nil, levelError
	}

	var encoder zapcore.Encoder
	switch requestedFormat {
	case LogFormatStructured:
		encoderConfiguration := zap.NewProductionEncoderConfig()
		encoderConfiguration.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfiguration)
	case LogFormatConsole:
		encoderConfiguration := zap.NewDevelopmentEncoderConfig()
		encoderConfiguration.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfiguration)
	default:
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, string(requestedFormat))
	}

	core := zapcore.NewCore(encoder, sink, atomicLevel)
	return zap.New(core), nil
}

func resolveLogLevel(requestedLevel LogLevel) (zap.AtomicLevel, error) {
	switch requestedLevel {
	case LogLevelDebug:
		return zap.NewAtomicLevelAt(zapcore.DebugLevel), nil
	case LogLevelInfo:
		return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
	case LogLevelWarn:
		return zap.NewAtomicLevelAt(zapcore.WarnLevel), nil
	case LogLevelError:
		return zap.NewAtomicLevelAt(zapcore.ErrorLevel), nil
	default:
		return zap.AtomicLevel{}, fmt.Errorf(unsupportedLogLevelTemplateConstant, string(requestedLevel))
	}
}
