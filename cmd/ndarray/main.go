// Package main provides the ndarray CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/born-ml/ndarray/backend/cpu"
	"github.com/born-ml/ndarray/internal/logging"
	"github.com/born-ml/ndarray/internal/simd"
	"github.com/born-ml/ndarray/tensor"
)

const version = "v0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, w io.Writer) int {
	if len(args) == 0 {
		usage(w)
		return 0
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(w, "ndarray %s\n", version)
	case "info":
		return infoCommand(args[1:], w)
	default:
		fmt.Fprintf(w, "unknown command %q\n\n", args[0])
		usage(w)
		return 2
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "ndarray - dense matrices and tensors for Go")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  info       Show SIMD and worker configuration")
	fmt.Fprintln(w, "             -v             log the kernel each mode dispatches to")
	fmt.Fprintln(w, "             -log-format    text or json (default text)")
}

func infoCommand(args []string, w io.Writer) int {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(w)
	verbose := fs.Bool("v", false, "log the kernel each mode dispatches to")
	format := fs.String("log-format", "text", "log format: text or json")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if !*verbose {
		info(w, cpu.Default())
		return 0
	}

	var logger *logging.Logger
	switch *format {
	case "text":
		logger = logging.NewTextLogger(w, slog.LevelDebug)
	case "json":
		logger = logging.NewJSONLogger(w, slog.LevelDebug)
	default:
		fmt.Fprintf(w, "unknown log format %q\n", *format)
		return 2
	}

	b := cpu.New(cpu.WithLogger(logger.Logger))
	info(w, b)
	if err := dispatchTour(b); err != nil {
		fmt.Fprintf(w, "dispatch: %v\n", err)
		return 1
	}
	return 0
}

func info(w io.Writer, b *cpu.Backend) {
	cfg := b.Config()
	isa := b.ISA()

	fmt.Fprintf(w, "platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "isa:        %s", isa)
	if simd.IsOverridden() {
		fmt.Fprintf(w, " (%s)", simd.EnvISA)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "lanes:      float32=%d float64=%d\n", simd.Lanes[float32](isa), simd.Lanes[float64](isa))
	fmt.Fprintf(w, "parallel:   %t\n", cfg.Enabled)
	fmt.Fprintf(w, "workers:    %d\n", cfg.NumWorkers)
	fmt.Fprintf(w, "min chunk:  %d\n", cfg.MinChunkSize)
}

// dispatchTour multiplies a small float32 and int32 pair in every mode so
// the backend logs which kernel each combination selects.
func dispatchTour(b *cpu.Backend) error {
	xf, err := tensor.Identity[float32](2, tensor.WithBackend(b))
	if err != nil {
		return err
	}
	xi, err := tensor.Identity[int32](2, tensor.WithBackend(b))
	if err != nil {
		return err
	}
	for _, mode := range tensor.Modes() {
		if _, err := xf.MatMul(xf, mode); err != nil {
			return err
		}
		if _, err := xi.MatMul(xi, mode); err != nil {
			return err
		}
	}
	return nil
}
