// Package cli provides the interactive spelling shell
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/wordcheck/pkg/advisor"
	"github.com/bastiangx/wordcheck/pkg/customdict"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	colorCorrect    = lipgloss.Color("#27ae60")
	colorMisspelled = lipgloss.Color("#f39c12")
	colorError      = lipgloss.Color("#e74c3c")
	colorMuted      = lipgloss.Color("#7f8c8d")
)

type styles struct {
	title      lipgloss.Style
	correct    lipgloss.Style
	misspelled lipgloss.Style
	err        lipgloss.Style
	muted      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:      r.NewStyle().Bold(true),
		correct:    r.NewStyle().Foreground(colorCorrect).Bold(true),
		misspelled: r.NewStyle().Foreground(colorMisspelled).Bold(true),
		err:        r.NewStyle().Foreground(colorError),
		muted:      r.NewStyle().Foreground(colorMuted),
	}
}

// InputHandler reads words line by line and prints a verdict for each.
// Lines starting with ':' are commands: ":add <word>", ":rm <word>" and ":q".
type InputHandler struct {
	advisor advisor.Advisor
	store   customdict.WordStore
	in      io.Reader
	out     io.Writer
	styles  styles
}

// NewInputHandler creates a shell over in and out. store may be nil.
func NewInputHandler(a advisor.Advisor, store customdict.WordStore, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		advisor: a,
		store:   store,
		in:      in,
		out:     out,
		styles:  newStyles(lipgloss.NewRenderer(out)),
	}
}

// Start runs the prompt loop until ":q" or the end of input.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, h.styles.title.Render("WordCheck"))
	fmt.Fprintln(h.out, h.styles.muted.Render("type a word and press Enter (:q to exit)"))

	reader := bufio.NewReader(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil

		line = strings.TrimSpace(line)
		if line == "" && eof {
			fmt.Fprintln(h.out)
			return nil
		}
		if quit := h.handleLine(line); quit {
			return nil
		}
		if eof {
			return nil
		}
	}
}

// handleLine processes one trimmed line and reports whether the shell should exit.
func (h *InputHandler) handleLine(line string) bool {
	if strings.HasPrefix(line, ":") {
		return h.handleCommand(line)
	}
	h.check(line)
	return false
}

func (h *InputHandler) check(word string) {
	start := time.Now()
	verdict, err := h.advisor.Evaluate(word)
	log.Debugf("Took [ %v ] for '%s'", time.Since(start), word)

	switch {
	case errors.Is(err, advisor.ErrEmpty):
		fmt.Fprintln(h.out, h.styles.muted.Render("Please enter a word to check."))
		return
	case err != nil:
		fmt.Fprintln(h.out, h.styles.err.Render("Error: "+err.Error()))
		return
	}

	if verdict.Correct() {
		fmt.Fprintln(h.out, h.styles.correct.Render("✅ Correct spelling: "+verdict.Corrected))
		fmt.Fprintln(h.out, h.styles.muted.Render("No corrections needed."))
		return
	}
	fmt.Fprintln(h.out, h.styles.misspelled.Render(fmt.Sprintf("❌ Did you mean: %s?", verdict.Corrected)))
	if len(verdict.Suggestions) > 0 {
		fmt.Fprintln(h.out, "Suggestions: "+strings.Join(verdict.Suggestions, ", "))
	}
}

func (h *InputHandler) handleCommand(line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case ":q", ":quit":
		return true
	case ":add", ":rm":
		if h.store == nil {
			fmt.Fprintln(h.out, h.styles.err.Render("Custom dictionary not configured."))
			return false
		}
		if len(args) != 1 {
			fmt.Fprintln(h.out, h.styles.muted.Render("usage: "+cmd+" <word>"))
			return false
		}
		h.updateStore(cmd, args[0])
	default:
		fmt.Fprintln(h.out, h.styles.err.Render("Unknown command: "+cmd))
	}
	return false
}

func (h *InputHandler) updateStore(cmd, word string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var err error
	verb := "Added"
	if cmd == ":add" {
		err = h.store.Add(ctx, word)
	} else {
		verb = "Removed"
		err = h.store.Remove(ctx, word)
	}
	if err != nil {
		log.Errorf("Custom dictionary %s %q: %v", cmd, word, err)
		fmt.Fprintln(h.out, h.styles.err.Render("Error: "+err.Error()))
		return
	}
	fmt.Fprintln(h.out, h.styles.correct.Render(fmt.Sprintf("%s '%s'", verb, strings.ToLower(word))))
}
