// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordfind IPC server and interactive CLI.

wordfind finds every dictionary word that can be spelled with some subset of
a set of letters. Given "tacs" it answers cast, cats, scat, act, cat and any
other word built from those letters, grouped by word length.

The dictionary is a plain text word list, one word per line. Only the first
whitespace separated token of each line is used, lowercased, and words shorter
than the minimum length or starting or ending with a hyphen are skipped. The
list is read once, on the first query, and every sub-multiset of letters
explored afterwards is memoized for the lifetime of the process.

# Usage

Start the msgpack IPC server with the default dictionary:

	wordfind

Run the interactive CLI against a custom word list:

	wordfind -c -dict /usr/share/dict/words

Answer a single query and exit:

	wordfind -q tacs

Compile a word list into a snapshot that loads without normalizing again:

	wordfind -dict oxford.txt -compile oxford.wfs

# Configuration

Runtime configuration is read from a TOML file, created with defaults if it
doesn't exist:

	[dict]
	path = "words.txt"
	min_word_len = 3
	show_progress = true

	[search]
	max_input_len = 16

	[cli]
	show_timing = true
	min_group_len = 1

	[server]
	max_query_len = 16

Flags override the file. An empty dict path uses /usr/share/dict/words; a
configured path that does not exist is reported as an error rather than
replaced by another list.

# Command Line Flags

	-config string
	    Path to a TOML config file
	-dict string
	    Dictionary word list or snapshot
	-d  Enable debug mode with detailed logging
	-c  Run the interactive CLI instead of the server
	-q string
	    Run a single query and exit
	-minlen int
	    Shortest dictionary word kept
	-maxinput int
	    Longest accepted input, 0 disables the cap
	-no-filter
	    Send inputs with non-letters to the finder anyway
	-compile string
	    Write a dictionary snapshot to this path and exit
	-rebuild-config
	    Overwrite the default config file with defaults and exit
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordfind/internal/cli"
	"github.com/bastiangx/wordfind/internal/logger"
	"github.com/bastiangx/wordfind/internal/utils"
	"github.com/bastiangx/wordfind/pkg/config"
	"github.com/bastiangx/wordfind/pkg/dictionary"
	"github.com/bastiangx/wordfind/pkg/finder"
	"github.com/bastiangx/wordfind/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "wordfind"
	gh      = "https://github.com/bastiangx/wordfind"
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

// main only wires packages together; the work happens in finder, cli and server.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to a TOML config file")
	dictPath := flag.String("dict", defaults.Dict.Path, "Dictionary word list (.txt) or snapshot (.wfs)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the interactive CLI")
	query := flag.String("q", "", "Run a single query and exit")
	minLen := flag.Int("minlen", defaults.Dict.MinWordLen, "Shortest dictionary word kept")
	maxInput := flag.Int("maxinput", defaults.Search.MaxInputLen, "Longest accepted input (0 disables the cap)")
	noFilter := flag.Bool("no-filter", defaults.CLI.NoFilter, "Send inputs containing non-letters to the finder anyway")
	compile := flag.String("compile", "", "Write a dictionary snapshot to this path and exit")
	rebuildConfig := flag.Bool("rebuild-config", false, "Overwrite the default config file with defaults and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)

	if *rebuildConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		log.Info("Config file rebuilt with defaults")
		return
	}

	cfg, usedConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(usedConfig))

	// explicit flags win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dict":
			cfg.Dict.Path = *dictPath
		case "minlen":
			cfg.Dict.MinWordLen = *minLen
		case "maxinput":
			cfg.Search.MaxInputLen = *maxInput
		case "no-filter":
			cfg.CLI.NoFilter = *noFilter
		}
	})

	resolvedDict := cfg.Dict.Path
	if pathResolver, err := utils.NewPathResolver(); err != nil {
		log.Warnf("Failed to initialize path resolver: %v", err)
	} else {
		resolvedDict = pathResolver.ResolveDictPath(cfg.Dict.Path)
	}
	format := dictionary.DetectFormat(resolvedDict)
	if info, ok := dictionary.GetFormatInfo(format); ok {
		log.Debugf("Using dictionary at: %s (%s)", resolvedDict, info.Description)
	}
	if format == dictionary.FormatSnapshot {
		if err := dictionary.ValidateFileFormat(resolvedDict, format); err != nil {
			log.Warnf("Dictionary snapshot looks invalid: %v", err)
		}
	}

	interactive := *cliMode || *query != "" || *compile != ""
	source := dictionary.SourceFor(resolvedDict, cfg.Dict.MinWordLen, cfg.Dict.ShowProgress && interactive)
	loader := dictionary.NewLoader(source, cfg.Dict.MinWordLen)
	wordFinder := finder.New(loader, finder.WithMaxInputLength(cfg.Search.MaxInputLen))

	if *compile != "" {
		idx, err := loader.Load()
		if err != nil {
			log.Fatalf("Failed to load dictionary: %v", err)
		}
		if err := dictionary.SaveSnapshot(*compile, idx); err != nil {
			log.Fatalf("Failed to write snapshot: %v", err)
		}
		log.Infof("Wrote %s words to %s", utils.FormatWithCommas(idx.Len()), *compile)
		return
	}

	opts := cli.Options{
		ShowTiming:  cfg.CLI.ShowTiming,
		MinGroupLen: cfg.CLI.MinGroupLen,
		NoFilter:    cfg.CLI.NoFilter,
	}

	if *query != "" {
		handler := cli.NewInputHandler(wordFinder, os.Stdin, os.Stdout, opts)
		if err := handler.Run(*query); err != nil {
			exitWithDictError(err)
		}
		return
	}

	// CLI mirrors the server's search path with human-readable output
	if *cliMode {
		log.Debug("Input info:",
			"dict", resolvedDict,
			"minLen", cfg.Dict.MinWordLen,
			"maxInput", cfg.Search.MaxInputLen,
			"noFilter", cfg.CLI.NoFilter)

		handler := cli.NewInputHandler(wordFinder, os.Stdin, os.Stdout, opts)
		if err := handler.Start(); err != nil {
			exitWithDictError(err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(wordFinder, cfg)

	showStartupInfo(resolvedDict)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func exitWithDictError(err error) {
	if errors.Is(err, dictionary.ErrSourceUnavailable) {
		log.Error("Could not read the dictionary. Set a word list with -dict or [dict] path in the config.")
	}
	log.Fatalf("%v", err)
}

func printVersion() {
	versionLogger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	versionLogger.SetStyles(styles)

	versionLogger.Print("")
	versionLogger.Print("[ wordfind ] Every word hiding in your letters")
	versionLogger.Print("", "version", Version)
	versionLogger.Print("")
	versionLogger.Print("use -h or --help to see available options")
	versionLogger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(dictPath string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Info("===========")
	log.Infof(" %s %s", AppName, Version)
	log.Info("===========")
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("dictionary: ( %s ), loaded on first query", dictPath)
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
