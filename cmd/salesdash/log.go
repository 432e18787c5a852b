package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// openLog sends level and above to stderr. When logsDir is set, every level
// is also written as JSON to a timestamped file there, with a "latest"
// symlink pointing at it.
func openLog(logsDir, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, usageErr.New("invalid log level %q", level)
	}

	stderrEncoder := zap.NewDevelopmentEncoderConfig()
	stderrEncoder.EncodeLevel = zapcore.CapitalColorLevelEncoder
	stderrLog, err := (zap.Config{
		Level:         zap.NewAtomicLevelAt(lvl),
		Encoding:      "console",
		EncoderConfig: stderrEncoder,
		OutputPaths:   []string{"stderr"},
	}).Build()
	if err != nil {
		return nil, errs.Wrap(err)
	}
	if logsDir == "" {
		return stderrLog, nil
	}

	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, errs.Wrap(err)
	}

	// Name the log based on the current timestamp to millisecond precision
	logName := time.Now().UTC().Format("2006.01.02.15.04.05.000Z") + ".json"

	// Convert to an absolute path for the file URI passed to zap
	logsPath, err := filepath.Abs(filepath.Join(logsDir, logName))
	if err != nil {
		return nil, errs.Wrap(err)
	}

	fileEncoder := zap.NewProductionEncoderConfig()
	fileEncoder.EncodeTime = zapcore.ISO8601TimeEncoder
	fileLog, err := (zap.Config{
		Level:         zap.NewAtomicLevelAt(zap.DebugLevel),
		Encoding:      "json",
		EncoderConfig: fileEncoder,
		OutputPaths:   []string{"file://" + logsPath},
	}).Build()
	if err != nil {
		return nil, errs.Wrap(err)
	}

	log := zap.New(zapcore.NewTee(stderrLog.Core(), fileLog.Core()))

	// Overwrite the latest symlink
	latest := filepath.Join(logsDir, ".latest")
	_ = os.Remove(latest)
	if err := os.Symlink(logName, latest); err != nil {
		return nil, errs.Wrap(err)
	}
	if err := os.Rename(latest, filepath.Join(logsDir, "latest")); err != nil {
		return nil, errs.Wrap(err)
	}

	return log, nil
}
