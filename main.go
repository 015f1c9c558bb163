package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/searchlist/internal/app"
	"github.com/atomicstack/searchlist/internal/config"
	"github.com/atomicstack/searchlist/internal/logging"
	"github.com/atomicstack/searchlist/internal/logging/events"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("searchlist needs an interactive terminal on stdin and stdout")

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stderr))
}

// run returns the process exit status: 2 for configuration problems, 1 for
// runtime failures.
func run(args, environ []string, stderr io.Writer) int {
	cfg, err := config.LoadArgs(args, environ)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 2
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	defer logging.Close()

	terminals := probeTerminals()
	events.App.Start(startupTracePayload(cfg, terminals))
	if !terminals.interactive() {
		fmt.Fprintf(stderr, "Error: %v\n", errNoTerminal)
		return 1
	}

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// startupTracePayload describes how the process was started. The API token
// is replaced before the config is logged.
func startupTracePayload(cfg config.Config, terminals terminalReport) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	logged := cfg
	if logged.App.Token != "" {
		logged.App.Token = "[REDACTED]"
	}
	payload := map[string]interface{}{
		"argv":      cfg.Args,
		"flags":     flags,
		"config":    logged,
		"envFile":   cfg.EnvFile,
		"terminals": terminals,
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}

type terminalReport struct {
	Stdin  terminalProbe `json:"stdin"`
	Stdout terminalProbe `json:"stdout"`
}

type terminalProbe struct {
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (r terminalReport) interactive() bool {
	return r.Stdin.IsTerminal && r.Stdout.IsTerminal
}

func probeTerminals() terminalReport {
	return terminalReport{
		Stdin:  probe(os.Stdin),
		Stdout: probe(os.Stdout),
	}
}

func probe(f *os.File) terminalProbe {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return terminalProbe{}
	}
	p := terminalProbe{IsTerminal: true}
	width, height, err := term.GetSize(fd)
	if err != nil {
		p.Error = err.Error()
		return p
	}
	p.Width, p.Height = width, height
	return p
}
