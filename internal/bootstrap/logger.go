package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/HunterSystem_Go/internal/config"
	"github.com/osse101/HunterSystem_Go/internal/logger"
)

// SetupLogger installs the process logger writing to stdout and a per-session
// file under cfg.LogDir. The caller closes the returned file.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	logFile, err := openSessionLog(cfg.LogDir, time.Now())
	if err != nil {
		return nil, err
	}

	loggerConfig := logger.ForEnvironment(cfg.LogLevel, cfg.LogFormat, ServiceName, cfg.Version, cfg.Environment)
	logger.InitLoggerWithWriter(loggerConfig, io.MultiWriter(os.Stdout, logFile))
	logStartup(cfg, loggerConfig)

	return logFile, nil
}

// openSessionLog prunes old session files and opens a new one stamped with now
func openSessionLog(dir string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateLogsDir, err)
	}
	cleanupLogs(dir)

	name := filepath.Join(dir, fmt.Sprintf(LogFileNamePattern, now.Format(LogFileTimestampFormat)))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgOpenLogFile, err)
	}
	return f, nil
}

func logStartup(cfg *config.Config, lc logger.Config) {
	slog.Info(LogMsgLoggingInitialized, "level", lc.LogLevel(), "source", lc.AddSource)
	slog.Info(LogMsgStartingApp,
		"environment", cfg.Environment,
		"version", cfg.Version,
		"storage_driver", cfg.StorageDriver,
		"reset_policy", cfg.ResetPolicy,
		"timezone", cfg.Timezone)

	slog.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_name", cfg.DBName,
		"sqlite_path", cfg.SQLitePath,
		"seed_path", cfg.SeedPath,
		"port", cfg.Port)

	for _, w := range cfg.Warnings {
		slog.Warn(LogMsgConfigWarning, "warning", w)
	}
}

// cleanupLogs removes old log files so that, with the file about to be created,
// at most LogFileRetentionLimit remain.
func cleanupLogs(logDir string) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var logFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			logFiles = append(logFiles, entry.Name())
		}
	}
	if len(logFiles) < LogFileRetentionLimit {
		return
	}

	// Timestamped names sort chronologically
	sort.Strings(logFiles)
	for _, name := range logFiles[:len(logFiles)-LogFileRetentionCount] {
		if err := os.Remove(filepath.Join(logDir, name)); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, "file", name, "error", err)
		}
	}
}
