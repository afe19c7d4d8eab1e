// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

// Package logger provides the process-wide logging capability for the audit
// engine. The CLI collaborator initializes it once; library code logs
// through the package functions without carrying a logger handle.
package logger

import (
	"strconv"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/asg5704/oauth-guardian-sub001/env"
)

// UnstructuredLogsEnv selects console output over JSON when set to a true
// boolean value. Unset defaults to console output, which suits interactive
// audit runs; CI pipelines set it to false for JSON.
const UnstructuredLogsEnv = "UNSTRUCTURED_LOGS"

// Debug logs a message at debug level.
func Debug(msg string) { zap.S().Debug(msg) }

// Debugf logs a printf-formatted message at debug level.
func Debugf(msg string, args ...any) { zap.S().Debugf(msg, args...) }

// Debugw logs a message at debug level with key-value pairs.
func Debugw(msg string, keysAndValues ...any) { zap.S().Debugw(msg, keysAndValues...) }

// Info logs a message at info level.
func Info(msg string) { zap.S().Info(msg) }

// Infof logs a printf-formatted message at info level.
func Infof(msg string, args ...any) { zap.S().Infof(msg, args...) }

// Infow logs a message at info level with key-value pairs.
func Infow(msg string, keysAndValues ...any) { zap.S().Infow(msg, keysAndValues...) }

// Warn logs a message at warning level.
func Warn(msg string) { zap.S().Warn(msg) }

// Warnf logs a printf-formatted message at warning level.
func Warnf(msg string, args ...any) { zap.S().Warnf(msg, args...) }

// Warnw logs a message at warning level with key-value pairs.
func Warnw(msg string, keysAndValues ...any) { zap.S().Warnw(msg, keysAndValues...) }

// Error logs a message at error level.
func Error(msg string) { zap.S().Error(msg) }

// Errorf logs a printf-formatted message at error level.
func Errorf(msg string, args ...any) { zap.S().Errorf(msg, args...) }

// Errorw logs a message at error level with key-value pairs.
func Errorw(msg string, keysAndValues ...any) { zap.S().Errorw(msg, keysAndValues...) }

// NewLogr adapts the singleton logger for collaborators that consume
// logr.Logger.
func NewLogr() logr.Logger {
	return zapr.NewLogger(zap.L())
}

// DebugProvider reports whether debug logging is enabled. The resolved
// configuration object satisfies it through its Verbose flag.
type DebugProvider interface {
	IsDebug() bool
}

type noDebug struct{}

func (noDebug) IsDebug() bool { return false }

// Initialize configures the singleton logger from the process environment
// with debug logging off.
func Initialize() {
	InitializeWithOptions(&env.OSReader{}, noDebug{})
}

// InitializeWithDebug configures the singleton logger with the given debug
// provider, typically the resolved configuration.
func InitializeWithDebug(debugProvider DebugProvider) {
	InitializeWithOptions(&env.OSReader{}, debugProvider)
}

// InitializeWithOptions configures the singleton logger with explicit
// environment and debug collaborators. Tests use it to avoid touching the
// real process environment.
func InitializeWithOptions(envReader env.Reader, debugProvider DebugProvider) {
	var cfg zap.Config
	if unstructuredLogsWithEnv(envReader) {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.Kitchen)
		cfg.OutputPaths = []string{"stderr"}
		cfg.DisableStacktrace = true
		cfg.DisableCaller = true
	} else {
		cfg = zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stdout"}
	}

	level := zap.InfoLevel
	if debugProvider.IsDebug() {
		level = zap.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	zap.ReplaceGlobals(zap.Must(cfg.Build()))
}

func unstructuredLogsWithEnv(envReader env.Reader) bool {
	v, err := strconv.ParseBool(envReader.Getenv(UnstructuredLogsEnv))
	if err != nil {
		// Unset or not a bool.
		return true
	}
	return v
}
