package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/WendelHime/torrentmeta/internal/bencode"
	"github.com/WendelHime/torrentmeta/internal/decoder"
	"github.com/WendelHime/torrentmeta/internal/logic"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage: torrentmeta [flags] decode <bencoded> | info <path>")

type config struct {
	logLevel slog.Level
	logFile  string
	maxDepth int
	maxSize  int64
	command  string
	arg      string
}

func parseFlags(args []string, output io.Writer) (config, error) {
	var cfg config
	var level string

	fs := flag.NewFlagSet("torrentmeta", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&level, "log-level", "error", "log level: debug, info, warn or error")
	fs.StringVar(&cfg.logFile, "log-file", "", "write JSON logs to this file instead of stderr")
	fs.IntVar(&cfg.maxDepth, "max-depth", bencode.DefaultMaxDepth, "maximum list/dict nesting")
	fs.Int64Var(&cfg.maxSize, "max-size", decoder.DefaultMaxDocumentSize, "maximum torrent file size in bytes")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if err := cfg.logLevel.UnmarshalText([]byte(level)); err != nil {
		return cfg, fmt.Errorf("invalid -log-level %q", level)
	}

	rest := fs.Args()
	if len(rest) != 2 || (rest[0] != "decode" && rest[0] != "info") {
		return cfg, errUsage
	}
	cfg.command, cfg.arg = rest[0], rest[1]

	return cfg, nil
}

func newLogger(cfg config, stderr io.Writer) (*slog.Logger, func() error, error) {
	opts := &slog.HandlerOptions{Level: cfg.logLevel}
	if cfg.logFile == "" {
		return slog.New(slog.NewTextHandler(stderr, opts)), func() error { return nil }, nil
	}

	logOut, err := os.Create(cfg.logFile)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewJSONHandler(logOut, opts)), logOut.Close, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, err)
		}
		return exitUsage
	}

	logger, closeLog, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer closeLog()

	codec := &bencode.Decoder{MaxDepth: cfg.maxDepth}
	d := decoder.NewDecoder(logger).WithMaxDepth(cfg.maxDepth).WithMaxDocumentSize(cfg.maxSize)
	inspector := logic.NewInspector(d, codec, logger)

	switch cfg.command {
	case "decode":
		err = inspector.Decode(stdout, cfg.arg)
	case "info":
		err = info(inspector, stdout, cfg.arg)
	}
	if err != nil {
		logger.Debug("command failed", slog.String("command", cfg.command), slog.Any("error", err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	return exitOK
}

func info(inspector logic.Inspector, stdout io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return inspector.Info(stdout, f)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
