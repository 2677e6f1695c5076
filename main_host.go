//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"

	"inkpad/app"
	"inkpad/hal"
	"inkpad/internal/api"
	"inkpad/internal/buildinfo"
	"inkpad/pad"
)

func main() {
	var headless hal.HeadlessConfig
	var radius float64
	var apiAddr string
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.Float64Var(&radius, "radius", 0, "Brush radius in pixels (0 = cell size * sqrt(2)/2).")
	flag.StringVar(&apiAddr, "api", "127.0.0.1:8428", "HTTP API listen address (empty disables).")
	flag.Parse()

	version := buildinfo.MergeVersion()
	cfg := app.Config{Radius: radius, Version: version}

	srv := api.NewServer(version)
	if apiAddr != "" {
		go func() {
			if err := srv.ListenAndServe(apiAddr); err != nil && err != http.ErrServerClosed {
				log.Printf("api: %v", err)
			}
		}()
	}

	newApp := func(h hal.HAL) func() error {
		a := app.New(h, cfg)
		srv.SetSource(a.Pad)
		return a.Step
	}

	if headless.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, headless); err != nil {
			if err == context.Canceled || err == pad.ErrQuit {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow("inkpad "+version, newApp); err != nil {
		if err == pad.ErrQuit {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
