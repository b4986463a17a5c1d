// Package restarter implements the restart sequence for the scraping
// worker: hard-reset the checkout, pull upstream, mark the entry script
// executable, clear the previous log, launch detached. The sequence is
// strictly linear and never aborts early: a failed step is logged and
// recorded, and the next step runs anyway, matching the behavior the
// deployment has always had.
package restarter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/scrapeops/scraperctl/internal/history"
	"github.com/scrapeops/scraperctl/internal/launcher"
)

// DefaultMessage is the fixed console line printed once per invocation,
// regardless of step outcomes.
const DefaultMessage = "Restart shop scraping"

// GitOps is the slice of repository operations the sequence needs.
type GitOps interface {
	ResetHard(ctx context.Context, revisions int) (string, error)
	Pull(ctx context.Context) (string, error)
}

// Restarter holds everything one invocation needs. Zero-value fields fall
// back to sensible defaults (stdout, DefaultMessage, slog.Default).
type Restarter struct {
	Repo       GitOps
	Spec       launcher.Spec
	EntryPath  string // entry script to chmod +x, usually inside Spec.WorkDir
	ResetDepth int    // commits to roll back, minimum 1
	Message    string
	Out        io.Writer
	Log        *slog.Logger
	Store      history.Store // optional restart audit sink

	launch func(launcher.Spec) (int, error) // test seam
}

// Restart runs the five steps in order and returns the audit record. It
// never returns an error: failures live in the record's steps, and the
// invoker's exit status does not depend on them.
func (r *Restarter) Restart(ctx context.Context) history.Record {
	log := r.logger()
	rec := history.Record{At: time.Now().UTC()}
	rec.Host, _ = os.Hostname()

	// The one piece of observable behavior that must never vary.
	fmt.Fprintln(r.out(), r.message())

	step := func(name string, fn func() (string, error)) (string, error) {
		started := time.Now()
		out, err := fn()
		st := history.Step{Name: name, Output: out, Duration: time.Since(started)}
		if err != nil {
			st.Error = err.Error()
			log.Error("step failed", "step", name, "err", err)
		} else {
			log.Info("step done", "step", name, "took", st.Duration)
		}
		rec.Steps = append(rec.Steps, st)
		return out, err
	}

	_, _ = step("reset", func() (string, error) {
		return r.Repo.ResetHard(ctx, r.resetDepth())
	})
	_, _ = step("pull", func() (string, error) {
		return r.Repo.Pull(ctx)
	})
	_, _ = step("chmod", func() (string, error) {
		return "", markExecutable(r.EntryPath)
	})
	_, _ = step("clear-log", func() (string, error) {
		return "", clearLog(r.Spec.LogPath)
	})
	_, _ = step("launch", func() (string, error) {
		pid, err := r.doLaunch(r.Spec)
		if err != nil {
			return "", err
		}
		rec.PID = pid
		rec.Launched = true
		return "pid " + strconv.Itoa(pid), nil
	})

	if r.Store != nil {
		if err := r.Store.Append(ctx, rec); err != nil {
			log.Warn("record restart history", "err", err)
		}
	}
	return rec
}

// markExecutable sets the execute bits on path, preserving the other
// permission bits. Idempotent; a missing file is the step's failure.
func markExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.Chmod(path, info.Mode()|0o111)
}

// clearLog force-removes the previous log file; absence is not an error.
func clearLog(path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (r *Restarter) doLaunch(spec launcher.Spec) (int, error) {
	if r.launch != nil {
		return r.launch(spec)
	}
	return launcher.Launch(spec)
}

func (r *Restarter) resetDepth() int {
	if r.ResetDepth < 1 {
		return 1
	}
	return r.ResetDepth
}

func (r *Restarter) message() string {
	if r.Message == "" {
		return DefaultMessage
	}
	return r.Message
}

func (r *Restarter) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

func (r *Restarter) logger() *slog.Logger {
	if r.Log == nil {
		return slog.Default()
	}
	return r.Log
}
