// Package obs provides the gateway's logging backend: one subsystem logger
// per component, configurable independently, writing to stdout and
// optionally to a rotated log file.
package obs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
)

type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	if rotatorInitiated {
		logRotator.Write(p)
	}
	return len(p), nil
}

var (
	backendLog = btclog.NewBackend(logWriter{})

	logRotator       *rotator.Rotator
	rotatorInitiated = false
)

// Subsystem tags. One per component named in spec.md's component table plus
// one per provider.
const (
	SubsystemGovernor   = "GOV"
	SubsystemRetry      = "RTY"
	SubsystemNormalizer = "NRM"
	SubsystemFacade     = "FCD"
	SubsystemTransport  = "XPT"
	SubsystemBinance    = "BIN"
	SubsystemBybit      = "BYB"
	SubsystemBitget     = "BTG"
	SubsystemOKX        = "OKX"
	SubsystemKuCoin     = "KUC"
	SubsystemCoinbase   = "CBP"
)

var allSubsystems = []string{
	SubsystemGovernor, SubsystemRetry, SubsystemNormalizer, SubsystemFacade,
	SubsystemTransport, SubsystemBinance, SubsystemBybit, SubsystemBitget,
	SubsystemOKX, SubsystemKuCoin, SubsystemCoinbase,
}

var subsystemLoggers = func() map[string]btclog.Logger {
	m := make(map[string]btclog.Logger, len(allSubsystems))
	for _, tag := range allSubsystems {
		m[tag] = backendLog.Logger(tag)
	}
	return m
}()

// Logger returns the logger for a subsystem tag. Panics on an unknown tag —
// subsystem tags are a closed, compile-time-known set.
func Logger(tag string) btclog.Logger {
	logger, ok := subsystemLoggers[tag]
	if !ok {
		panic("obs: unknown subsystem " + tag)
	}
	return logger
}

// InitLogRotator turns on file rotation for all subsystem output. Safe to
// skip entirely; without it, logging still goes to stdout.
func InitLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0700); err != nil {
			return fmt.Errorf("obs: failed to create log directory: %w", err)
		}
	}
	r, err := rotator.New(logFile, 10*1024*1024, false, 3)
	if err != nil {
		return fmt.Errorf("obs: failed to create log rotator: %w", err)
	}
	logRotator = r
	rotatorInitiated = true
	return nil
}

// SetLogLevel sets the level of a single subsystem. Unknown subsystems are
// ignored, matching the teacher's permissive behavior for config-driven input.
func SetLogLevel(subsystemTag, levelStr string) {
	logger, ok := subsystemLoggers[subsystemTag]
	if !ok {
		return
	}
	level, _ := btclog.LevelFromString(levelStr)
	logger.SetLevel(level)
}

// SetLogLevels sets every subsystem to the same level.
func SetLogLevels(levelStr string) {
	for tag := range subsystemLoggers {
		SetLogLevel(tag, levelStr)
	}
}

// ParseAndSetDebugLevels parses the log-level syntax of config's LogLevel
// (--loglevel / GATEWAY_LOGLEVEL): either a single level
// applied to every subsystem, or a comma-separated list of subsys=level
// pairs, exactly like the teacher's debug-level flag grammar.
func ParseAndSetDebugLevels(debugLevel string) error {
	if debugLevel == "" {
		return nil
	}
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		if !validLogLevel(debugLevel) {
			return fmt.Errorf("obs: invalid debug level %q", debugLevel)
		}
		SetLogLevels(debugLevel)
		return nil
	}

	for _, pair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(pair, "=") {
			return fmt.Errorf("obs: invalid subsystem/level pair %q", pair)
		}
		fields := strings.SplitN(pair, "=", 2)
		subsysID, level := fields[0], fields[1]
		if _, ok := subsystemLoggers[subsysID]; !ok {
			return fmt.Errorf("obs: unknown subsystem %q -- supported: %s",
				subsysID, strings.Join(SupportedSubsystems(), ", "))
		}
		if !validLogLevel(level) {
			return fmt.Errorf("obs: invalid debug level %q", level)
		}
		SetLogLevel(subsysID, level)
	}
	return nil
}

func validLogLevel(level string) bool {
	switch level {
	case "trace", "debug", "info", "warn", "error", "critical":
		return true
	}
	return false
}

// SupportedSubsystems returns the sorted list of subsystem tags, for error
// messages and CLI help text.
func SupportedSubsystems() []string {
	tags := make([]string, 0, len(subsystemLoggers))
	for tag := range subsystemLoggers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
