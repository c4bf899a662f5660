package main

import (
	"os"
	"strings"

	"styleswipe/internal/cli"
)

func isSlotName(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "bottom", "shoes":
		return true
	}
	return false
}

// rewriteDirectPickArgs makes `styleswipe top` work like
// `styleswipe pick top`. Cobra treats the first non-flag token as a
// subcommand, so argv is rewritten before parsing. Persistent flags may come
// first (e.g. `styleswipe --api ... top`), so the first positional token is
// what matters, not argv[1].
func rewriteDirectPickArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--api":    true,
		"--user":   true,
		"--format": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") {
				continue
			}
			if valueFlags[a] {
				i++ // skip the flag's value
			}
			continue
		}
		if isSlotName(a) {
			out := make([]string, 0, len(argv)+1)
			out = append(out, argv[:i]...)
			out = append(out, "pick")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectPickArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
