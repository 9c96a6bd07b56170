// Copyright 2025 The WordCheck Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the WordCheck spelling advisor.

WordCheck tells whether a word is spelled correctly and, when it is not,
offers the most likely correction plus up to five suggestions. It runs as a
MessagePack IPC server for editors, as an HTTP API, or as an interactive
shell.

# Usage

Start the IPC server with default settings:

	wordcheck

Use a custom dictionary directory and enable debug mode:

	wordcheck -data /path/to/dict -d

Run the interactive shell:

	wordcheck -c

Serve the HTTP API:

	wordcheck -http -addr :9000

The data directory holds either binary chunk files (dict_0001.bin, ...) or
plain text lists with one "word count" entry per line. Single files are
accepted as well.

# Configuration

Configuration lives in a TOML file created with defaults on first run:

	[advisor]
	backend = "model"
	max_edit_distance = 2
	min_word_length = 2
	threshold = 0

	[dict]
	path = "data/"
	max_words = 50000

	[redis]
	enabled = false
	addr = "localhost:6379"
	key = "wordcheck:custom_dict"
	timeout_ms = 2000

	[http]
	addr = ":8080"

REDIS_ADDR, REDIS_PASSWORD, REDIS_DB and HTTP_ADDR override the file and
may be kept in a .env file next to the working directory.

# Backends

The "model" backend is a statistical spelling model trained on the
dictionary frequencies. The "matcher" backend ranks dictionary words that
share the first letter by edit distance and frequency. With Redis enabled,
words in the custom dictionary are always reported as correct.

# Command Line Flags

	-data string
	    Dictionary file or directory (default from config)
	-config string
	    Path to config.toml
	-backend string
	    "model" or "matcher" (default from config)
	-words int
	    Maximum words to load (0 for all)
	-c  Run the interactive shell
	-http
	    Serve the HTTP API
	-addr string
	    HTTP listen address (default from config)
	-d  Enable debug logging
	-reset-config
	    Rewrite the default config.toml and exit
	-version
	    Show current version
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordcheck/internal/cli"
	"github.com/bastiangx/wordcheck/internal/utils"
	"github.com/bastiangx/wordcheck/pkg/advisor"
	"github.com/bastiangx/wordcheck/pkg/config"
	"github.com/bastiangx/wordcheck/pkg/customdict"
	"github.com/bastiangx/wordcheck/pkg/dictionary"
	"github.com/bastiangx/wordcheck/pkg/httpapi"
	"github.com/bastiangx/wordcheck/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"
)

const (
	Version = "0.3.0"
	AppName = "wordcheck"
	gh      = "https://github.com/bastiangx/wordcheck"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, dictionary and corrector, then hands over to the selected mode.
func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	resetConfig := flag.Bool("reset-config", false, "Overwrite the default config.toml with built-in defaults and exit")
	dataPath := flag.String("data", "", "Dictionary file or directory (default from config)")
	configPath := flag.String("config", "", "Path to config.toml")
	backend := flag.String("backend", "", `Correction backend: "model" or "matcher" (default from config)`)
	wordLimit := flag.Int("words", -1, "Maximum number of words to load (use 0 for all words)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the interactive shell")
	httpMode := flag.Bool("http", false, "Serve the HTTP API")
	httpAddr := flag.String("addr", "", "HTTP listen address (default from config)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *resetConfig {
		path, err := config.RebuildConfigFile()
		if err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote default config to %s\n", path)
		os.Exit(0)
	}

	cfg, usedConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ApplyEnv()
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(usedConfig))

	if *dataPath != "" {
		cfg.Dict.Path = *dataPath
	}
	if *backend != "" {
		cfg.Advisor.Backend = *backend
	}
	if *wordLimit >= 0 {
		cfg.Dict.MaxWords = *wordLimit
	}
	if *httpAddr != "" {
		cfg.HTTP.Addr = *httpAddr
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	if *debugMode {
		log.Debug("Runtime", "info", pathResolver.GetRuntimeInfo())
	}

	resolvedData, err := pathResolver.GetDataDir(cfg.Dict.Path)
	if err != nil {
		log.Fatalf("Failed to resolve data dir: (%v)", err)
	}
	log.Debugf("Using data at: %s", resolvedData)

	words, err := dictionary.Load(resolvedData, cfg.Dict.MaxWords)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	log.Debugf("Loaded %d words, backend=%s", len(words), cfg.Advisor.Backend)

	base, err := buildCorrector(cfg.Advisor, words)
	if err != nil {
		log.Fatalf("Failed to build corrector: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store customdict.WordStore
	redisStore, err := openStore(ctx, cfg.Redis)
	if err != nil {
		log.Warnf("Custom dictionary disabled: %v", err)
	} else if redisStore != nil {
		defer redisStore.Close()
		store = redisStore
	}

	adv := advisor.New(withCustomWords(base, store, cfg.Redis.Timeout()))

	switch {
	case *httpMode:
		e := httpapi.NewRouter(adv, store)
		showStartupInfo(resolvedData, "http "+cfg.HTTP.Addr)
		if err := httpapi.Serve(ctx, e, cfg.HTTP.Addr); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	case *cliMode:
		stop()
		sigHandler()
		log.SetReportTimestamp(false)
		h := cli.NewInputHandler(adv, store, os.Stdin, os.Stdout)
		if err := h.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
	default:
		stop()
		sigHandler()
		log.Debug("spawning IPC")
		srv := server.NewServer(adv, store, os.Stdin, os.Stdout)
		showStartupInfo(resolvedData, "ipc")
		if err := srv.Start(); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}
}

// printVersion shows the version banner.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#27ae60", Dark: "#2ecc71"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ WordCheck ] Spelling verdicts and suggestions")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo logs basic info about the init process to stderr.
func showStartupInfo(dataPath, mode string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	log.Infof("%s %s", AppName, Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("data: ( %s )", dataPath)
	log.Infof("mode: %s", mode)
}
