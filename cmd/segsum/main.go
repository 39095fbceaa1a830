// Package main provides the segsum CLI: it evaluates an unsorted segment sum
// and its gradient for a problem given as JSON.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const version = "v0.1.0-dev"

const usage = `Usage: segsum <command> [flags]

Commands:
  version    Show version
  run        Evaluate a segment sum and its gradient

Run "segsum run -h" for run flags.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "segsum %s\n", version)
		return 0
	case "run":
		return runProblem(args[1:], stdin, stdout, stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}
}

func runProblem(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	backendName := fs.String("backend", "cpu", "compute backend: cpu or webgpu")
	dtype := fs.String("dtype", "float64", "element type: float32 or float64")
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn or error")
	logFormat := fs.String("log-format", "text", "log format: text or json")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: segsum run [flags] [problem.json]")
		fmt.Fprintln(stderr, "Reads the problem from stdin when no file is given.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger, err := newLogger(stderr, *logLevel, *logFormat)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	input := stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			logger.Error("open problem", "error", err)
			return 1
		}
		defer f.Close()
		input = f
	}

	p, err := decodeProblem(input)
	if err != nil {
		logger.Error("decode problem", "error", err)
		return 1
	}

	sol, err := solveWith(*backendName, *dtype, p, logger)
	if err != nil {
		logger.Error("segment sum failed", "error", err)
		return 1
	}

	if err := encodeSolution(stdout, sol); err != nil {
		logger.Error("write result", "error", err)
		return 1
	}
	return 0
}

// newLogger builds a slog logger writing to w from the -log-level and
// -log-format flags.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, errors.Errorf("invalid log format %q", format)
	}
}
