package bootstrap

import (
	"io"
	"log/slog"
	"os"

	"github.com/osse101/BurgerClient_Go/internal/config"
	"github.com/osse101/BurgerClient_Go/internal/logger"
)

// SetupLogger installs the default logger on stderr and, when LOG_DIR is
// set, on a new session file there. The caller must close the result.
func SetupLogger(cfg *config.Config) (io.Closer, error) {
	logCfg := logger.NewConfig(cfg.LogLevel, cfg.LogFormat).
		WithIdentity(cfg.ServiceName, cfg.Version, cfg.Environment)
	if cfg.LogDir != "" {
		logCfg = logCfg.WithSessionDir(cfg.LogDir, cfg.LogRetention)
	}

	closer, err := logger.Open(logCfg, os.Stderr)
	if err != nil {
		return nil, err
	}
	logStartup(cfg)
	return closer, nil
}

func logStartup(cfg *config.Config) {
	slog.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "log_dir", cfg.LogDir)
	slog.Debug(LogMsgStarting,
		"environment", cfg.Environment,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)
	slog.Debug(LogMsgConfigurationLoaded,
		"api_base_url", cfg.APIBaseURL,
		"state_db", cfg.StateDB,
		"request_timeout", cfg.RequestTimeout)
}
