package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/searchlist/internal/app"
	"github.com/atomicstack/searchlist/internal/search"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	EnvFile string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envServer      = "SEARCHLIST_SERVER"
	envToken       = "SEARCHLIST_TOKEN"
	envUser        = "SEARCHLIST_USER"
	envCatalog     = "SEARCHLIST_CATALOG"
	envScreen      = "SEARCHLIST_SCREEN"
	envDebounce    = "SEARCHLIST_DEBOUNCE"
	envPoll        = "SEARCHLIST_POLL"
	envTimeout     = "SEARCHLIST_TIMEOUT"
	envWidth       = "SEARCHLIST_WIDTH"
	envHeight      = "SEARCHLIST_HEIGHT"
	envShowFooter  = "SEARCHLIST_FOOTER"
	envVerbose     = "SEARCHLIST_VERBOSE"
	envTrace       = "SEARCHLIST_TRACE"
	envLogFile     = "SEARCHLIST_LOG_FILE"
	envSnapshotDir = "SEARCHLIST_SNAPSHOT_DIR"
	envEnvFile     = "SEARCHLIST_ENV_FILE"

	defaultEnvFile     = ".env"
	defaultSnapshotDir = "~/.cache/searchlist/snapshots"
	defaultPoll        = 30 * time.Second
)

// LoadArgs allows tests to supply specific args/environment. Values from the
// env file fill in variables missing from environ; flags override both.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	envFile, explicit := envFileArg(args, env)
	envFile, err := expandPath(envFile)
	if err != nil {
		return Config{}, err
	}
	if err := mergeEnvFile(env, envFile, explicit); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("searchlist", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	server := fs.String("server", envOrDefault(env, envServer, ""), "base URL of the service")
	token := fs.String("token", envOrDefault(env, envToken, ""), "bearer token sent with every request")
	user := fs.Int("user", envOrInt(env, envUser, 0), "id of the signed-in user (used by filters such as Mine)")
	catalogPath := fs.String("catalog", envOrDefault(env, envCatalog, ""), "path to a screen catalog (defaults to the built-in catalog)")
	screen := fs.String("screen", envOrDefault(env, envScreen, ""), "screen to open (defaults to the first catalog screen)")
	debounce := fs.Duration("debounce", envOrDuration(env, envDebounce, search.DefaultDebounce), "delay between the last keystroke and a search")
	poll := fs.Duration("poll", envOrDuration(env, envPoll, defaultPoll), "section refresh interval (0 fetches once)")
	timeout := fs.Duration("timeout", envOrDuration(env, envTimeout, search.DefaultTimeout), "request timeout")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	snapshotDir := fs.String("snapshot-dir", envOrDefault(env, envSnapshotDir, defaultSnapshotDir), "directory for offline section snapshots (empty disables them)")
	fs.String("env-file", envFile, "file of KEY=value pairs loaded before reading the environment")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	paths := []*string{catalogPath, logFile, snapshotDir}
	for _, p := range paths {
		expanded, err := expandPath(*p)
		if err != nil {
			return Config{}, err
		}
		*p = expanded
	}

	cfg := Config{
		App: app.Config{
			Server:      strings.TrimSpace(*server),
			Token:       *token,
			UserID:      *user,
			CatalogPath: *catalogPath,
			Screen:      *screen,
			SnapshotDir: *snapshotDir,
			Debounce:    *debounce,
			Poll:        *poll,
			Timeout:     *timeout,
			Width:       *width,
			Height:      *height,
			ShowFooter:  *footer,
			Verbose:     *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		EnvFile: envFile,
		Flags: map[string]string{
			"server":      *server,
			"user":        strconv.Itoa(*user),
			"catalog":     *catalogPath,
			"screen":      *screen,
			"debounce":    debounce.String(),
			"poll":        poll.String(),
			"timeout":     timeout.String(),
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"footer":      strconv.FormatBool(*footer),
			"trace":       strconv.FormatBool(*trace),
			"verbose":     strconv.FormatBool(*verbose),
			"logFile":     *logFile,
			"snapshotDir": *snapshotDir,
			"envFile":     envFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// envFileArg finds the env file before the flag set is built, since the
// file supplies defaults for the other flags.
func envFileArg(args []string, env map[string]string) (string, bool) {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if value, ok := strings.CutPrefix(name, "env-file="); ok {
			return value, true
		}
		if name == "env-file" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	if v, ok := env[envEnvFile]; ok && strings.TrimSpace(v) != "" {
		return v, true
	}
	return defaultEnvFile, false
}

// mergeEnvFile adds variables from path that are not already set. A missing
// default file is not an error.
func mergeEnvFile(env map[string]string, path string, explicit bool) error {
	if path == "" {
		return nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read env file %s: %w", path, err)
	}
	for k, v := range values {
		if _, ok := env[k]; !ok {
			env[k] = v
		}
	}
	return nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(trimmed)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", trimmed, err)
	}
	return expanded, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.Server == "" {
		return fmt.Errorf("server is required (--server or %s)", envServer)
	}
	u, err := url.Parse(cfg.App.Server)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server must be an http(s) URL (got %q)", cfg.App.Server)
	}
	if cfg.App.UserID < 0 {
		return fmt.Errorf("user must be >= 0 (got %d)", cfg.App.UserID)
	}
	if cfg.App.Debounce <= 0 {
		return fmt.Errorf("debounce must be > 0 (got %s)", cfg.App.Debounce)
	}
	if cfg.App.Poll < 0 {
		return fmt.Errorf("poll must be >= 0 (got %s)", cfg.App.Poll)
	}
	if cfg.App.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", cfg.App.Timeout)
	}
	return nil
}
