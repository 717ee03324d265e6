// Command styml parses a YAML-subset document and prints it back out,
// either in the canonical YAML form (-d) or the default debug
// structural form.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/dfeneyrou/styml-go"
)

var fs = afero.NewOsFs()

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("styml", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	emitYAML := flags.BoolP("debug-yaml", "d", false, "emit the canonical YAML form instead of the debug form")
	showStats := flags.BoolP("stats", "n", false, "print parse/emit timing and memory stats")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	rest := flags.Args()
	if len(rest) != 1 {
		fmt.Fprintln(stderr, "usage: styml [-d] [-n] <file|->")
		return 1
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	src, err := readInput(rest[0])
	if err != nil {
		logger.Error("failed to read input", zap.String("path", rest[0]), zap.Error(err))
		return 1
	}

	start := time.Now()
	doc, err := styml.ParseBytes(src)
	parseElapsed := time.Since(start)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	var out string
	start = time.Now()
	if *emitYAML {
		out = doc.YAML()
	} else {
		out = doc.Debug(true)
	}
	emitElapsed := time.Since(start)

	fmt.Fprint(stdout, out)
	if !endsWithNewline(out) {
		fmt.Fprintln(stdout)
	}

	if *showStats {
		st := doc.Stats()
		logger.Info("parse/emit stats",
			zap.Duration("parse", parseElapsed),
			zap.Duration("emit", emitElapsed),
			zap.Int("arena_bytes", st.ArenaBytes),
			zap.Int("element_count", st.ElementCount),
			zap.Int("elements_bytes", st.ElementsBytes),
		)
	}
	return 0
}

// endsWithNewline reports whether out already ends with a newline, since
// the YAML emitter terminates any non-empty output with one and the
// debug emitter never does.
func endsWithNewline(out string) bool {
	return len(out) > 0 && out[len(out)-1] == '\n'
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return afero.ReadFile(fs, path)
}
