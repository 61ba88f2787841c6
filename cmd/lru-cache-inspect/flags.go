package main

// flags.go parses lru-cache-inspect's command-line flags into an options
// struct. Kept separate from main.go so the flag surface can grow (new
// output formats, new pprof targets) without main.go's control flow
// churning alongside it.
//
// © 2025 arena-cache authors. MIT License.

import (
	"flag"
	"time"
)

type options struct {
	target           string
	json             bool
	watch            bool
	interval         time.Duration
	heapProfile      string
	goroutineProfile string
	version          bool
}

func parseFlags() *options {
	opts := &options{}

	flag.StringVar(&opts.target, "target", "http://localhost:6060", "base URL of the instrumented service")
	flag.BoolVar(&opts.json, "json", false, "emit machine-readable JSON instead of a pretty table")
	flag.BoolVar(&opts.watch, "watch", false, "poll the snapshot endpoint repeatedly")
	flag.DurationVar(&opts.interval, "interval", time.Second, "polling interval used with -watch")
	flag.StringVar(&opts.heapProfile, "heap-profile", "", "download a heap pprof profile to this path and exit")
	flag.StringVar(&opts.goroutineProfile, "goroutine-profile", "", "download a goroutine pprof profile to this path and exit")
	flag.BoolVar(&opts.version, "version", false, "print the inspector's version and exit")

	flag.Parse()
	return opts
}
