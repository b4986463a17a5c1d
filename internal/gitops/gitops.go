// Package gitops drives git in the scraper checkout through the git binary.
// There is deliberately no library here: the tool mirrors what an operator
// would type, and the combined command output is kept for the step log.
package gitops

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type runFunc func(ctx context.Context, dir string, name string, args ...string) (string, error)

// Repo identifies the checkout and how to reach its upstream.
type Repo struct {
	Dir    string
	Remote string
	Branch string // empty means the branch's configured upstream
	// SudoReset prefixes the reset with sudo. The original deployment ran
	// only the reset elevated; kept configurable rather than fixed.
	SudoReset bool

	run runFunc
}

func New(dir, remote, branch string, sudoReset bool) *Repo {
	return &Repo{Dir: dir, Remote: remote, Branch: branch, SudoReset: sudoReset, run: runGit}
}

// ResetHard moves the working tree and index back revisions commits from
// HEAD, discarding local changes. revisions < 1 is treated as 1.
func (r *Repo) ResetHard(ctx context.Context, revisions int) (string, error) {
	if revisions < 1 {
		revisions = 1
	}
	target := fmt.Sprintf("HEAD~%d", revisions)
	if r.SudoReset {
		return r.run(ctx, r.Dir, "sudo", "git", "reset", "--hard", target)
	}
	return r.run(ctx, r.Dir, "git", "reset", "--hard", target)
}

// Pull fetches from the configured remote and merges into the current
// branch.
func (r *Repo) Pull(ctx context.Context) (string, error) {
	args := []string{"pull"}
	if r.Remote != "" {
		args = append(args, r.Remote)
		if r.Branch != "" {
			args = append(args, r.Branch)
		}
	}
	return r.run(ctx, r.Dir, "git", args...)
}

// Head returns the current HEAD commit hash.
func (r *Repo) Head(ctx context.Context) (string, error) {
	out, err := r.run(ctx, r.Dir, "git", "rev-parse", "HEAD")
	return strings.TrimSpace(out), err
}

func runGit(ctx context.Context, dir string, name string, args ...string) (string, error) {
	// #nosec G204 -- fixed binary names, arguments built above
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return string(out), nil
}
