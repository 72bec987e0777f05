// Package app holds the application-wide context: resolved directories,
// persisted options, the current language, display formatting and logging.
// One App is built at startup and passed to whatever needs it.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"brewkit/internal/config"
	applog "brewkit/internal/log"
)

// Name is used for the default config directory and log file.
const Name = "brewkit"

// DataFilePattern matches the data files kept in the user data directory.
const DataFilePattern = "*.xml"

// Dirs are the directories the application reads and writes.
type Dirs struct {
	// DataDir holds the shipped default data files.
	DataDir string
	// DocDir holds the manual.
	DocDir string
	// ConfigDir holds the options file and the log file.
	ConfigDir string
	// UserDataDir holds the user's copies of the data files.
	UserDataDir string
}

// App is the application context.
type App struct {
	mu       sync.RWMutex
	dirs     Dirs
	options  Options
	logger   *slog.Logger
	logFile  io.Closer
	language string
}

// New resolves the directories from cfg, makes sure they exist, loads the
// options file (creating it when missing) and copies the default data files
// into the user data directory.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	dirs, err := resolveDirs(cfg.Paths)
	if err != nil {
		return nil, err
	}

	a := &App{
		dirs:    dirs,
		options: DefaultOptions(),
		logger:  applog.Logger(),
	}

	if path := strings.TrimSpace(cfg.Logging.File); path != "" {
		logger, file, err := applog.OpenFile(path)
		if err != nil {
			return nil, err
		}
		a.logger = logger
		a.logFile = file
	}

	if err := a.ensureDirectoriesExist(); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.ReadOptions(ctx); err != nil {
		a.Close()
		return nil, err
	}

	opts := a.Options()
	if opts.UserDataDir != "" && cfg.Paths.UserDataDir == "" {
		a.mu.Lock()
		a.dirs.UserDataDir = opts.UserDataDir
		a.mu.Unlock()
		if err := a.ensureDirectoriesExist(); err != nil {
			a.Close()
			return nil, err
		}
	}

	a.language = languageFor(opts)

	if err := a.ensureDataFilesExist(ctx); err != nil {
		a.Close()
		return nil, err
	}

	a.Log(ctx, LevelInfo, "application ready",
		"config_dir", a.dirs.ConfigDir,
		"user_data_dir", a.dirs.UserDataDir,
		"language", a.language,
	)
	return a, nil
}

// Close releases the log file, if one was opened.
func (a *App) Close() error {
	if a.logFile == nil {
		return nil
	}
	err := a.logFile.Close()
	a.logFile = nil
	return err
}

// Dirs returns the resolved directories.
func (a *App) Dirs() Dirs {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dirs
}

// Options returns a copy of the current options.
func (a *App) Options() Options {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.options
}

// ErrUserDataDirOption is returned by UpdateOptions when fn changes the user
// data directory. Use SetUserDataDir, which also copies the data files.
var ErrUserDataDirOption = errors.New("user data directory must be changed with SetUserDataDir")

// UpdateOptions applies fn to the current options, normalizes the result and
// saves it. The display language follows the updated Language option.
func (a *App) UpdateOptions(ctx context.Context, fn func(*Options)) error {
	return a.updateOptions(ctx, fn, false)
}

func (a *App) updateOptions(ctx context.Context, fn func(*Options), allowDirChange bool) error {
	a.mu.Lock()
	opts := a.options
	fn(&opts)
	if !allowDirChange && opts.UserDataDir != a.options.UserDataDir {
		a.mu.Unlock()
		return ErrUserDataDirOption
	}
	reset := opts.normalize()
	a.options = opts
	a.language = languageFor(opts)
	if allowDirChange {
		a.dirs.UserDataDir = opts.UserDataDir
	}
	a.mu.Unlock()

	for _, name := range reset {
		a.Log(ctx, LevelWarning, "option has an unsupported value, using default", "option", name)
	}
	return a.SaveOptions(ctx)
}

func (a *App) setOptions(opts Options) {
	a.mu.Lock()
	a.options = opts
	a.mu.Unlock()
}

// SetUserDataDir copies the data files into dir and then switches the user
// data directory to it. The previous directory is kept when the copy fails.
func (a *App) SetUserDataDir(ctx context.Context, dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return errors.New("user data directory must not be empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve user data directory: %w", err)
	}

	if err := a.copyDataFiles(ctx, abs); err != nil {
		a.Log(ctx, LevelError, "could not copy data files", "dir", abs, "error", err)
		return err
	}

	return a.updateOptions(ctx, func(o *Options) {
		o.UserDataDir = abs
	}, true)
}

// copyDataFiles copies every data file from the current user data directory
// into dst, overwriting files of the same name.
func (a *App) copyDataFiles(ctx context.Context, dst string) error {
	src := a.Dirs().UserDataDir
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if src == dst {
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(src, DataFilePattern))
	if err != nil {
		return fmt.Errorf("list data files: %w", err)
	}
	for _, path := range matches {
		target := filepath.Join(dst, filepath.Base(path))
		if err := copyFile(path, target); err != nil {
			return err
		}
		a.Log(ctx, LevelDebug, "data file copied", "from", path, "to", target)
	}
	return nil
}

func (a *App) ensureDirectoriesExist() error {
	dirs := a.Dirs()
	for _, dir := range []string{dirs.ConfigDir, dirs.UserDataDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// ensureDataFilesExist copies the shipped data files into the user data
// directory unless the user already has a file of that name.
func (a *App) ensureDataFilesExist(ctx context.Context) error {
	dirs := a.Dirs()
	if dirs.DataDir == dirs.UserDataDir {
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(dirs.DataDir, DataFilePattern))
	if err != nil {
		return fmt.Errorf("list default data files: %w", err)
	}
	if len(matches) == 0 {
		a.Log(ctx, LevelDebug, "no default data files", "dir", dirs.DataDir)
		return nil
	}

	for _, path := range matches {
		target := filepath.Join(dirs.UserDataDir, filepath.Base(path))
		if _, err := os.Stat(target); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", target, err)
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		a.Log(ctx, LevelInfo, "default data file installed", "file", target)
	}
	return nil
}

func resolveDirs(paths config.PathsConfig) (Dirs, error) {
	dirs := Dirs{
		DataDir:     strings.TrimSpace(paths.DataDir),
		DocDir:      strings.TrimSpace(paths.DocDir),
		ConfigDir:   strings.TrimSpace(paths.ConfigDir),
		UserDataDir: strings.TrimSpace(paths.UserDataDir),
	}

	if dirs.ConfigDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Dirs{}, fmt.Errorf("resolve config directory: %w", err)
		}
		dirs.ConfigDir = filepath.Join(base, Name)
	}
	if dirs.DataDir == "" {
		dirs.DataDir = defaultDataDir()
	}
	if dirs.DocDir == "" {
		dirs.DocDir = filepath.Join(dirs.DataDir, "doc")
	}
	if dirs.UserDataDir == "" {
		dirs.UserDataDir = dirs.ConfigDir
	}
	return dirs, nil
}

// defaultDataDir is the data directory next to the executable.
func defaultDataDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "data"
	}
	return filepath.Join(filepath.Dir(exe), "data")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}
