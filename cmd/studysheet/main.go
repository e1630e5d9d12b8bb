package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"studysheet/internal/cli"
	"studysheet/internal/store"
)

var nodePrefixes = []string{store.TopicPrefix + "-", store.SubTopicPrefix + "-", store.QuestionPrefix + "-"}

func isNodeID(s string) bool {
	s = strings.TrimSpace(s)
	for _, p := range nodePrefixes {
		if strings.HasPrefix(s, p) && len(s) > len(p) {
			return true
		}
	}
	return false
}

// rewriteDirectLookupArgs turns `studysheet <id>` into `studysheet show <id>`. Cobra treats the
// first non-flag token as a subcommand, so argv is rewritten before parsing. Persistent flags
// may come first, so the first positional token is searched for.
func rewriteDirectLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without consuming a value so an id is never swallowed.
	valueFlags := map[string]bool{
		"--dir":       true,
		"--storage":   true,
		"--redis-url": true,
		"--seed":      true,
		"--format":    true,
		"--log":       true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	rewrite := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "show")
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isNodeID(argv[i+1]) {
				return rewrite(i + 1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}
		if isNodeID(a) {
			return rewrite(i)
		}
		return argv
	}
	return argv
}

// run executes the CLI and returns the process exit code. Commands print their own errors;
// anything cobra rejects before a command runs (unknown commands, bad flags) is printed here.
func run(argv []string, stdout, stderr io.Writer) int {
	argv = rewriteDirectLookupArgs(argv)

	cmd := cli.NewRootCmd()
	cmd.SetArgs(argv[1:])
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		if !cli.Reported(err) {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}
