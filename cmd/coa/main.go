package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jtsunne/coa-go/internal/client"
	"github.com/jtsunne/coa-go/internal/config"
	"github.com/jtsunne/coa-go/internal/engine"
	"github.com/jtsunne/coa-go/internal/live"
	"github.com/jtsunne/coa-go/internal/tui"
)

// tokenEnv names the environment variable holding the bearer token.
const tokenEnv = "COA_TOKEN"

// options is the resolved command line: the merged configuration plus the
// run mode.
type options struct {
	cfg    config.Config
	scopes []string
	once   bool
}

// parseBaseURL validates a dashboard URL and returns it without userinfo,
// query or fragment. A password (or a lone username) in the userinfo is
// returned as the bearer token.
func parseBaseURL(raw string) (baseURL, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", "", fmt.Errorf("unsupported scheme %q (must be http or https)", u.Scheme)
	}
	if u.Hostname() == "" {
		return "", "", fmt.Errorf("invalid URL %q: host is required", raw)
	}
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > 65535 {
			return "", "", fmt.Errorf("invalid URL %q: port out of range", raw)
		}
	}
	if u.User != nil {
		if pw, ok := u.User.Password(); ok {
			token = pw
		} else {
			token = u.User.Username()
		}
		u.User = nil
	}
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	return strings.TrimRight(u.String(), "/"), token, nil
}

// resolveToken picks the bearer token: flag > environment > URL > config file.
func resolveToken(fileToken, uriToken, envToken, flagToken string) string {
	for _, t := range []string{flagToken, envToken, uriToken} {
		if t != "" {
			return t
		}
	}
	return fileToken
}

// splitScopes splits a comma-separated scope list, dropping blanks.
func splitScopes(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseArgs loads the config file and applies command line overrides.
// Only flags that were set explicitly override file values.
func parseArgs(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("coa", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", config.DefaultConfigPath, "path to the TOML config file")
		rawURL     = fs.String("url", "", "dashboard base URL (overrides base_url)")
		scope      = fs.String("scope", "", "dashboard scope; comma-separated with --once")
		token      = fs.String("token", "", "bearer token (default $"+tokenEnv+")")
		insecure   = fs.Bool("insecure", false, "skip TLS certificate verification")
		poll       = fs.Duration("poll", 0, "polling interval (e.g. 30s); 0 keeps the configured value")
		noPoll     = fs.Bool("no-poll", false, "disable background polling")
		logFile    = fs.String("log", "", "write debug logs to this file")
		once       = fs.Bool("once", false, "fetch once, print a report and exit")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: coa [flags] [dashboard-url]\n\n")
		fmt.Fprintf(stderr, "examples:\n")
		fmt.Fprintf(stderr, "  coa http://localhost:8080\n")
		fmt.Fprintf(stderr, "  coa --scope plant-7 --poll 15s https://ops.example.com\n")
		fmt.Fprintf(stderr, "  coa --once --scope north,south https://ops.example.com\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	rest := fs.Args()
	if len(rest) > 1 {
		// flag parsing stops at the first positional argument, so trailing
		// flags would otherwise be ignored silently.
		extra := rest[1]
		if len(extra) > 1 && extra[0] == '-' {
			return options{}, fmt.Errorf("flag %q must be placed before the URL", extra)
		}
		return options{}, fmt.Errorf("unexpected argument %q", extra)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return options{}, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if len(rest) == 1 {
		*rawURL = rest[0]
		set["url"] = true
	}
	var uriToken string
	if set["url"] {
		cfg.BaseURL, uriToken, err = parseBaseURL(*rawURL)
		if err != nil {
			return options{}, err
		}
	}
	cfg.Token = resolveToken(cfg.Token, uriToken, os.Getenv(tokenEnv), *token)
	if set["insecure"] {
		cfg.Insecure = *insecure
	}
	if set["poll"] {
		if *poll < 0 {
			return options{}, errors.New("--poll must not be negative")
		}
		cfg.PollInterval = *poll
	}
	if set["no-poll"] {
		cfg.DisablePolling = *noPoll
	}
	if set["log"] {
		cfg.LogFile = *logFile
	}

	scopes := splitScopes(cfg.Scope)
	if set["scope"] {
		scopes = splitScopes(*scope)
	}
	if !*once && len(scopes) > 1 {
		return options{}, errors.New("multiple scopes require --once")
	}
	if len(scopes) == 1 {
		cfg.Scope = scopes[0]
	} else if len(scopes) == 0 {
		cfg.Scope = ""
	}

	if err := cfg.Validate(); err != nil {
		return options{}, err
	}
	return options{cfg: cfg, scopes: scopes, once: *once}, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg := opts.cfg

	log.SetOutput(io.Discard)
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "coa")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	}

	c, err := client.NewDefaultClient(client.ClientConfig{
		BaseURL:            cfg.BaseURL,
		Resource:           cfg.Resource,
		Token:              cfg.Token,
		InsecureSkipVerify: cfg.Insecure,
		RequestTimeout:     cfg.RequestTimeout,
	})
	if err != nil {
		return err
	}

	if opts.once {
		timeout := cfg.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		results, err := engine.FetchScopes(ctx, c, opts.scopes)
		if err != nil {
			return err
		}
		return writeReport(os.Stdout, results)
	}

	return runTUI(c, cfg)
}

// runTUI starts the synchronizer and renders it until the user quits.
func runTUI(c client.DashboardClient, cfg config.Config) error {
	var program *tea.Program

	// Updates wait until the program exists; the App reads the initial
	// state itself when it is built.
	ready := make(chan struct{})
	syncer := live.New(c, live.Config{
		Scope:              cfg.Scope,
		PollInterval:       cfg.PollInterval,
		DisablePolling:     cfg.DisablePolling,
		MinInterval:        cfg.MinInterval,
		StaleThreshold:     cfg.StaleThreshold,
		StaleCheckInterval: cfg.StaleCheckInterval,
		DiscardOutOfOrder:  cfg.DiscardOutOfOrder,
		Logger:             log.Default(),
		OnUpdate: func(u live.Update) {
			<-ready
			program.Send(tui.SyncMsg(u))
		},
	})
	defer syncer.Close()

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = live.DefaultPollInterval
	}
	app := tui.NewApp(syncer, tui.Options{
		Scope:        cfg.Scope,
		BaseURL:      c.BaseURL(),
		PollInterval: pollInterval,
		Polling:      !cfg.DisablePolling,
	})

	program = tea.NewProgram(app, tea.WithAltScreen(), tea.WithReportFocus())
	close(ready)

	_, err := program.Run()
	return err
}
