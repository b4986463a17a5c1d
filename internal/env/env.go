package env

import (
	"os"
	"strings"
)

// Merge composes the environment for the launched scraper: the OS
// environment as the base, then overrides ("K=V" entries) applied on top.
// ${VAR} references in override values are expanded against the composed
// map (single pass, no recursion).
func Merge(overrides []string) []string {
	m := make(map[string]string)
	keys := make([]string, 0, len(os.Environ())+len(overrides))
	for _, kv := range os.Environ() {
		if k, v, ok := split(kv); ok {
			if _, seen := m[k]; !seen {
				keys = append(keys, k)
			}
			m[k] = v
		}
	}
	for _, kv := range overrides {
		if k, v, ok := split(kv); ok {
			if _, seen := m[k]; !seen {
				keys = append(keys, k)
			}
			m[k] = v
		}
	}
	for k, v := range m {
		if strings.Contains(v, "${") {
			m[k] = os.Expand(v, func(name string) string { return m[name] })
		}
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+m[k])
	}
	return out
}

func split(kv string) (string, string, bool) {
	i := strings.IndexByte(kv, '=')
	if i <= 0 {
		return "", "", false
	}
	return kv[:i], kv[i+1:], true
}
