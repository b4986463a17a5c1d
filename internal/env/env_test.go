package env

import (
	"strings"
	"testing"
)

func lookup(t *testing.T, merged []string, key string) (string, bool) {
	t.Helper()
	for _, kv := range merged {
		if v, ok := strings.CutPrefix(kv, key+"="); ok {
			return v, true
		}
	}
	return "", false
}

func TestMergeOverridesOSEnv(t *testing.T) {
	t.Setenv("SCRAPERCTL_TEST_KEY", "from-os")
	merged := Merge([]string{"SCRAPERCTL_TEST_KEY=from-config"})
	v, ok := lookup(t, merged, "SCRAPERCTL_TEST_KEY")
	if !ok || v != "from-config" {
		t.Fatalf("override not applied: %q ok=%v", v, ok)
	}
}

func TestMergeKeepsOSEnv(t *testing.T) {
	t.Setenv("SCRAPERCTL_KEEP_KEY", "kept")
	merged := Merge(nil)
	v, ok := lookup(t, merged, "SCRAPERCTL_KEEP_KEY")
	if !ok || v != "kept" {
		t.Fatalf("OS env lost: %q ok=%v", v, ok)
	}
}

func TestMergeExpandsAgainstComposedMap(t *testing.T) {
	t.Setenv("SCRAPERCTL_BASE", "os-value")
	merged := Merge([]string{
		"SCRAPERCTL_BASE=override",
		"SCRAPERCTL_DERIVED=${SCRAPERCTL_BASE}/data",
	})
	v, _ := lookup(t, merged, "SCRAPERCTL_DERIVED")
	if v != "override/data" {
		t.Fatalf("expansion should see the override, got %q", v)
	}
}

func TestMergeIgnoresMalformedEntries(t *testing.T) {
	merged := Merge([]string{"NOEQUALS", "=novalue", "OK=1"})
	if v, ok := lookup(t, merged, "OK"); !ok || v != "1" {
		t.Fatalf("valid entry lost: %q ok=%v", v, ok)
	}
	if _, ok := lookup(t, merged, "NOEQUALS"); ok {
		t.Fatalf("malformed entry should be dropped")
	}
}
