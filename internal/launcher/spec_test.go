package launcher

import (
	"strings"
	"testing"
)

func TestBuildCommandPlain(t *testing.T) {
	s := Spec{Command: "./shop_scrape.py --once"}
	cmd := s.BuildCommand()
	if len(cmd.Args) != 2 || cmd.Args[0] != "./shop_scrape.py" || cmd.Args[1] != "--once" {
		t.Fatalf("unexpected args: %v", cmd.Args)
	}
}

func TestBuildCommandMetacharsUseShell(t *testing.T) {
	s := Spec{Command: "echo hi > out.txt"}
	cmd := s.BuildCommand()
	if cmd.Args[0] != "/bin/sh" || cmd.Args[1] != "-c" {
		t.Fatalf("expected shell wrapping: %v", cmd.Args)
	}
}

func TestBuildCommandExplicitShellNotDoubleWrapped(t *testing.T) {
	s := Spec{Command: "sh -c 'echo hi; sleep 1'"}
	cmd := s.BuildCommand()
	if cmd.Args[0] != "/bin/sh" || cmd.Args[1] != "-c" {
		t.Fatalf("expected /bin/sh -c: %v", cmd.Args)
	}
	if got := cmd.Args[2]; got != "echo hi; sleep 1" {
		t.Fatalf("outer quotes not stripped: %q", got)
	}
	if strings.Contains(cmd.Args[2], "sh -c") {
		t.Fatalf("shell double-wrapped: %v", cmd.Args)
	}
}

func TestBuildCommandEmpty(t *testing.T) {
	s := Spec{}
	cmd := s.BuildCommand()
	if cmd.Args[0] != "/bin/true" {
		t.Fatalf("empty command should be a no-op: %v", cmd.Args)
	}
}
