package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/padnav/internal/app"
	uistate "github.com/atomicstack/padnav/internal/ui/state"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envLink        = "PADNAV_LINK"
	envDevice      = "PADNAV_DEVICE"
	envBaud        = "PADNAV_BAUD"
	envReadTimeout = "PADNAV_READ_TIMEOUT"
	envProfile     = "PADNAV_PROFILE"
	envPort        = "PADNAV_PORT"
	envSlot        = "PADNAV_SLOT"
	envWaitTimeout = "PADNAV_WAIT_TIMEOUT"
	envFPS         = "PADNAV_FPS"
	envSection     = "PADNAV_SECTION"
	envWidth       = "PADNAV_WIDTH"
	envHeight      = "PADNAV_HEIGHT"
	envShowFooter  = "PADNAV_FOOTER"
	envTrace       = "PADNAV_TRACE"
	envLogFile     = "PADNAV_LOG_FILE"
)

const (
	defaultBaud        = 115200
	defaultReadTimeout = 250 * time.Millisecond
	defaultWaitTimeout = 10 * time.Second
	maxFPS             = 240
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("padnav", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	link := fs.String("link", envOrDefault(env, envLink, app.LinkSim), "controller link: sim or serial")
	device := fs.String("device", envOrDefault(env, envDevice, ""), "serial device of the controller bridge")
	baud := fs.Int("baud", envOrInt(env, envBaud, defaultBaud), "serial baud rate")
	readTimeout := fs.Duration("read-timeout", envOrDuration(env, envReadTimeout, defaultReadTimeout), "serial response timeout")
	profile := fs.String("profile", envOrDefault(env, envProfile, "dualshock2"), "simulated device profile: built-in name or YAML/TOML file")
	port := fs.Int("port", envOrInt(env, envPort, 0), "controller port")
	slot := fs.Int("slot", envOrInt(env, envSlot, 0), "controller slot")
	waitTimeout := fs.Duration("wait-timeout", envOrDuration(env, envWaitTimeout, defaultWaitTimeout), "how long to wait for the link to settle (0 waits forever)")
	fps := fs.Int("fps", envOrInt(env, envFPS, 60), "frames per second")
	section := fs.String("section", envOrDefault(env, envSection, ""), "section shown at startup")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, true), "show the key hint row")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file (- disables it)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			Link:        strings.ToLower(strings.TrimSpace(*link)),
			Device:      *device,
			Baud:        *baud,
			ReadTimeout: *readTimeout,
			Profile:     *profile,
			Port:        *port,
			Slot:        *slot,
			WaitTimeout: *waitTimeout,
			FPS:         *fps,
			Section:     *section,
			Width:       *width,
			Height:      *height,
			ShowFooter:  *footer,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"link":        *link,
			"device":      *device,
			"baud":        strconv.Itoa(*baud),
			"readTimeout": readTimeout.String(),
			"profile":     *profile,
			"port":        strconv.Itoa(*port),
			"slot":        strconv.Itoa(*slot),
			"waitTimeout": waitTimeout.String(),
			"fps":         strconv.Itoa(*fps),
			"section":     *section,
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"footer":      strconv.FormatBool(*footer),
			"trace":       strconv.FormatBool(*trace),
			"logFile":     *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
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

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	c := cfg.App
	switch c.Link {
	case app.LinkSim:
	case app.LinkSerial:
		if strings.TrimSpace(c.Device) == "" {
			return fmt.Errorf("serial link needs -device")
		}
		if c.Baud <= 0 {
			return fmt.Errorf("baud must be > 0 (got %d)", c.Baud)
		}
	default:
		return fmt.Errorf("unknown link %q (want %s or %s)", c.Link, app.LinkSim, app.LinkSerial)
	}
	if c.Port < 0 || c.Slot < 0 {
		return fmt.Errorf("port and slot must be >= 0 (got %d,%d)", c.Port, c.Slot)
	}
	if c.FPS <= 0 || c.FPS > maxFPS {
		return fmt.Errorf("fps must be between 1 and %d (got %d)", maxFPS, c.FPS)
	}
	if c.WaitTimeout < 0 {
		return fmt.Errorf("wait-timeout must be >= 0 (got %s)", c.WaitTimeout)
	}
	if _, err := uistate.ParseSection(c.Section); err != nil {
		return err
	}
	return nil
}
