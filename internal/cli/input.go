// Package cli runs the interactive word finder loop on a terminal.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/wordfind/internal/utils"
	"github.com/bastiangx/wordfind/pkg/dictionary"
	"github.com/bastiangx/wordfind/pkg/finder"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// statsCommand prints finder counters instead of running a query.
const statsCommand = ":stats"

// InputHandler reads letters line by line and prints every word they spell,
// grouped by length. An empty line ends the session.
type InputHandler struct {
	finder      finder.IFinder
	in          io.Reader
	out         io.Writer
	showTiming  bool
	minGroupLen int
	noFilter    bool
	header      lipgloss.Style
	muted       lipgloss.Style
}

// Options controls what the InputHandler prints.
type Options struct {
	ShowTiming  bool
	MinGroupLen int
	NoFilter    bool
}

// NewInputHandler handles initialization of the InputHandler
func NewInputHandler(f finder.IFinder, in io.Reader, out io.Writer, opts Options) *InputHandler {
	renderer := lipgloss.NewRenderer(out)
	if opts.MinGroupLen < 1 {
		opts.MinGroupLen = 1
	}
	return &InputHandler{
		finder:      f,
		in:          in,
		out:         out,
		showTiming:  opts.ShowTiming,
		minGroupLen: opts.MinGroupLen,
		noFilter:    opts.NoFilter,
		header: renderer.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"}),
		muted: renderer.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#797593", Dark: "#908caa"}),
	}
}

// Start begins the interface loop.
// It returns nil when the user enters an empty line or input ends, and an
// error if the dictionary cannot be loaded.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, "Welcome to the word finder")
	fmt.Fprintln(h.out, h.muted.Render("enter some letters to see every word they spell, an empty line exits"))
	fmt.Fprintln(h.out)

	reader := bufio.NewReader(h.in)
	for {
		fmt.Fprint(h.out, "Enter characters below: \n")
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		input := strings.TrimSpace(line)
		if input == "" {
			return nil
		}
		if err := h.handleInput(input); err != nil {
			return err
		}
		if err == io.EOF {
			return nil
		}
	}
}

// Run handles a single line of input as if it had been typed.
func (h *InputHandler) Run(input string) error {
	return h.handleInput(strings.TrimSpace(input))
}

// handleInput runs a single query and prints its groups.
// Only dictionary failures are returned; bad input is reported and skipped.
func (h *InputHandler) handleInput(input string) error {
	if input == statsCommand {
		h.printStats()
		return nil
	}

	if !h.noFilter && !utils.IsValidInput(input) {
		if utils.ContainsNumbers(input) {
			log.Warnf("Input '%s' contains digits, no word can match", input)
		} else {
			log.Warnf("Input '%s' contains characters other than letters (filtered out)", input)
		}
		return nil
	}

	start := time.Now()
	result, err := h.finder.FindAllWords(input)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, finder.ErrInputTooLong):
		log.Errorf("%v", err)
		return nil
	case errors.Is(err, dictionary.ErrSourceUnavailable):
		return err
	case err != nil:
		log.Errorf("Search failed for '%s': %v", input, err)
		return nil
	}
	log.Debugf("Took [ %v ] for input '%s'", elapsed, input)

	if h.showTiming {
		fmt.Fprintf(h.out, "Result found in: %.3fs\n", elapsed.Seconds())
	}
	h.printResult(result)
	return nil
}

func (h *InputHandler) printResult(result finder.Result) {
	var b strings.Builder
	shown := 0
	for _, n := range result.Lengths() {
		if n < h.minGroupLen {
			continue
		}
		shown++
		b.WriteString("\n")
		b.WriteString(h.header.Render(fmt.Sprintf("%d Character length words:", n)))
		b.WriteString("\n\n")
		b.WriteString(strings.Join(result[n], ", "))
		b.WriteString("\n\n")
	}
	if shown == 0 {
		b.WriteString(h.muted.Render("No words found"))
		b.WriteString("\n\n")
	}
	fmt.Fprint(h.out, b.String())
}

func (h *InputHandler) printStats() {
	stats := h.finder.Stats()
	keys := maps.Keys(stats)
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(h.out, "%-14s %s\n", k, utils.FormatWithCommas(stats[k]))
	}
}
