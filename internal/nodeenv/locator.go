package nodeenv

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"
)

const (
	// DefaultExec is returned when the node on PATH qualifies.
	DefaultExec = "npx"
	// DefaultMinMajor is the lowest Node.js major version accepted.
	DefaultMinMajor = 20
	// DefaultTimeout bounds the `node --version` probe.
	DefaultTimeout = 5 * time.Second
)

// Candidate is a qualifying runtime. BinDir is empty when the default lookup
// succeeded and the bare DefaultExec name should be used.
type Candidate struct {
	Exec   string
	BinDir string
}

// runFunc runs a command and returns its standard output.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Locator finds a qualifying runtime. The zero value is not usable; build one
// with New.
type Locator struct {
	MinMajor    int
	VersionsDir string
	Timeout     time.Duration
	Log         *zap.Logger

	run runFunc
}

// New returns a Locator scanning versionsDir for installs of at least
// minMajor. A nil logger discards probe diagnostics.
func New(minMajor int, versionsDir string, log *zap.Logger) *Locator {
	if minMajor <= 0 {
		minMajor = DefaultMinMajor
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Locator{
		MinMajor:    minMajor,
		VersionsDir: versionsDir,
		Timeout:     DefaultTimeout,
		Log:         log,
		run:         runCommand,
	}
}

// Find returns the first qualifying runtime, or false when there is none.
// Probe failures are never fatal; they are logged at debug level and the next
// strategy is tried.
func (l *Locator) Find(ctx context.Context) (Candidate, bool) {
	if l.systemQualifies(ctx) {
		return Candidate{Exec: DefaultExec}, true
	}
	return l.scanVersionsDir()
}

func (l *Locator) systemQualifies(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, l.Timeout)
	defer cancel()

	out, err := l.run(ctx, "node", "--version")
	if err != nil {
		l.Log.Debug("system node probe failed", zap.Error(err))
		return false
	}
	v, err := semver.NewVersion(strings.TrimSpace(string(out)))
	if err != nil {
		l.Log.Debug("unparseable node version", zap.String("output", string(out)), zap.Error(err))
		return false
	}
	if int(v.Major()) < l.MinMajor {
		l.Log.Debug("system node too old", zap.String("version", v.Original()), zap.Int("min_major", l.MinMajor))
		return false
	}
	return true
}

func (l *Locator) scanVersionsDir() (Candidate, bool) {
	if l.VersionsDir == "" {
		return Candidate{}, false
	}
	entries, err := os.ReadDir(l.VersionsDir)
	if err != nil {
		l.Log.Debug("node versions dir unreadable", zap.String("dir", l.VersionsDir), zap.Error(err))
		return Candidate{}, false
	}

	var (
		best     *semver.Version
		bestName string
	)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v, err := semver.NewVersion(e.Name())
		if err != nil {
			l.Log.Debug("ignoring malformed node version dir", zap.String("name", e.Name()))
			continue
		}
		if int(v.Major()) < l.MinMajor {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best, bestName = v, e.Name()
		}
	}
	if best == nil {
		return Candidate{}, false
	}

	binDir, err := filepath.Abs(filepath.Join(l.VersionsDir, bestName, "bin"))
	if err != nil {
		return Candidate{}, false
	}
	npx := filepath.Join(binDir, DefaultExec)
	if _, err := os.Stat(npx); err != nil {
		l.Log.Debug("npx missing from node install", zap.String("path", npx), zap.Error(err))
		return Candidate{}, false
	}
	return Candidate{Exec: npx, BinDir: binDir}, true
}
