package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Open installs the default logger on console and, when cfg.Dir is set, on a
// new session file there. Old session files beyond cfg.Retention are removed
// first. The returned closer releases the session file; it is a no-op
// without cfg.Dir.
func Open(cfg Config, console io.Writer) (io.Closer, error) {
	if cfg.Dir == "" {
		InitLoggerWithWriter(cfg, console)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(cfg.Dir, dirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateLogDir, err)
	}
	removed, failed := pruneSessions(cfg.Dir, cfg.Retention)

	name := filepath.Join(cfg.Dir, fmt.Sprintf(SessionFilePattern, time.Now().Format(SessionFileTimestamp)))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePermission)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgOpenLogFile, err)
	}

	InitLoggerWithWriter(cfg, io.MultiWriter(console, f))
	for _, e := range failed {
		slog.Warn(LogMsgDeleteOldLogFailed, "error", e)
	}
	slog.Debug(LogMsgSessionLogOpened, "file", name, "pruned", removed)
	return f, nil
}

// pruneSessions deletes the oldest session files so that at most keep
// remain. It returns how many were removed and the failures.
func pruneSessions(dir string, keep int) (int, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, []error{err}
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), SessionFileExtension) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	removed := 0
	var failed []error
	for i := 0; i < len(names)-keep; i++ {
		if err := os.Remove(filepath.Join(dir, names[i])); err != nil {
			failed = append(failed, err)
			continue
		}
		removed++
	}
	return removed, failed
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
