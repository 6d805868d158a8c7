package main

import (
	"context"
	"currency-converter/config"
	"currency-converter/console"
	"currency-converter/exchange"
	"errors"
	"flag"
	"fmt"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"io"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Getenv, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, getenv func(string) string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Parse(args, getenv, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	w := log.NewSyncWriter(stderr)
	logger := log.NewLogfmtLogger(w)
	logger = level.NewFilter(logger, cfg.Allow)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller, "session", uuid.NewString())

	table, err := cfg.Table()
	if err != nil {
		return err
	}
	level.Info(logger).Log("msg", "loaded rates", "base", table.Base(), "currencies", len(table.Currencies()), "file", cfg.RatesFile)

	service := exchange.NewService(table.Lookup)
	service = exchange.NewLoggingService(log.With(logger, "component", "exchange"), service)

	repl := console.NewREPL(stdin, stdout, service, table, log.With(logger, "component", "console"))
	return repl.Run(context.Background())
}
