// Package clipboard copies SVG markup to the system clipboard.
//
// Two tiers: the first writes the markup with an image/svg+xml MIME type
// through a platform clipboard tool (wl-copy, xclip, or a user-configured
// command), so rich-paste targets like presentation editors receive a
// vector image while plain-text targets still get the markup. When no such
// tool is available or the write fails, the second tier writes the markup
// as plain text via github.com/atotto/clipboard. Only when both tiers fail
// does the error reach the caller.
package clipboard

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/google/shlex"
)

// svgMIME is the MIME type announced for the multi-format tier.
const svgMIME = "image/svg+xml"

// Outcome reports which write tier succeeded.
type Outcome int

const (
	// OutcomeMultiFormat means the MIME-typed write succeeded.
	OutcomeMultiFormat Outcome = iota
	// OutcomeTextOnly means only the plain-text fallback succeeded.
	OutcomeTextOnly
)

// Message returns the user-facing success message for this outcome.
func (o Outcome) Message(displayName string) string {
	if o == OutcomeMultiFormat {
		return fmt.Sprintf("%s SVG icon copied to clipboard! Press Ctrl+V to paste in PowerPoint.", displayName)
	}
	return fmt.Sprintf("%s SVG copied as text to clipboard! Press Ctrl+V to paste.", displayName)
}

// Error is returned when both write tiers failed.
type Error struct {
	MultiErr error // nil when no multi-format tool was available
	TextErr  error
}

func (e *Error) Error() string {
	if e.MultiErr != nil {
		return fmt.Sprintf("clipboard write failed: %v (multi-format write also failed: %v)", e.TextErr, e.MultiErr)
	}
	return fmt.Sprintf("clipboard write failed: %v", e.TextErr)
}

func (e *Error) Unwrap() error { return e.TextErr }

// runFunc executes the multi-format clipboard command with the markup on
// stdin. Swapped out in tests.
type runFunc func(ctx context.Context, argv []string, stdin string) error

// textFunc writes plain text to the clipboard. Swapped out in tests.
type textFunc func(text string) error

// Writer performs the two-tier clipboard write.
type Writer struct {
	argv   []string // multi-format command; nil disables tier one
	run    runFunc
	text   textFunc
	logger *slog.Logger
}

// New builds a Writer. override, when non-empty, is a shell-style command
// line (parsed with shlex) used verbatim as the multi-format tier; the
// markup is piped to its stdin. Otherwise the tier is auto-detected from
// the environment and PATH.
func New(override string) (*Writer, error) {
	var argv []string
	if override != "" {
		parsed, err := shlex.Split(override)
		if err != nil {
			return nil, fmt.Errorf("clipboard: invalid command override %q: %w", override, err)
		}
		if len(parsed) == 0 {
			return nil, fmt.Errorf("clipboard: empty command override")
		}
		argv = parsed
	} else {
		argv = detectCommand()
	}
	return &Writer{
		argv:   argv,
		run:    runCommand,
		text:   clipboard.WriteAll,
		logger: slog.Default(),
	}, nil
}

// detectCommand picks a MIME-capable clipboard tool for the current
// session. Returns nil when none is available, which disables tier one.
func detectCommand() []string {
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		if path, err := exec.LookPath("wl-copy"); err == nil {
			return []string{path, "--type", svgMIME}
		}
	}
	if os.Getenv("DISPLAY") != "" {
		if path, err := exec.LookPath("xclip"); err == nil {
			return []string{path, "-selection", "clipboard", "-t", svgMIME}
		}
	}
	return nil
}

// Copy writes markup to the clipboard, trying the multi-format tier first
// and falling back to a plain-text write of the identical markup. The
// returned Outcome identifies which tier succeeded; when both fail the
// *Error carries both causes.
func (w *Writer) Copy(ctx context.Context, markup string) (Outcome, error) {
	var multiErr error
	if len(w.argv) > 0 {
		multiErr = w.run(ctx, w.argv, markup)
		if multiErr == nil {
			return OutcomeMultiFormat, nil
		}
		w.logger.Debug("multi-format clipboard write failed, falling back to text",
			"cmd", w.argv[0], "err", multiErr)
	}

	if textErr := w.text(markup); textErr != nil {
		return 0, &Error{MultiErr: multiErr, TextErr: textErr}
	}
	return OutcomeTextOnly, nil
}

// runCommand pipes stdin into argv and waits for it to exit.
func runCommand(ctx context.Context, argv []string, stdin string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(stdin)
	if out, err := cmd.CombinedOutput(); err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s: %v: %s", argv[0], err, msg)
		}
		return fmt.Errorf("%s: %v", argv[0], err)
	}
	return nil
}
