package userinteraction

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"captcha-verifier/internal/application/port/output"
	"captcha-verifier/internal/domain/entity"

	"github.com/fatih/color"
)

var (
	_ output.ProgressPort        = (*Console)(nil)
	_ output.UserInteractionPort = (*Console)(nil)
)

type Console struct {
	in  *bufio.Reader
	out io.Writer

	// one reader goroutine per Console; a wait abandoned on ctx leaves
	// its line for the next wait instead of a second blocked reader
	readOnce sync.Once
	lines    chan error
}

func NewConsole() *Console {
	return NewConsoleWith(os.Stdin, os.Stdout)
}

func NewConsoleWith(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:    bufio.NewReader(in),
		out:   out,
		lines: make(chan error, 1),
	}
}

func (c *Console) ScenarioStarted(name string, steps int) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(c.out, "\n━━━ %s captcha (%d steps) ━━━\n", name, steps)
}

func (c *Console) StepStarted(index int, step entity.Step) {
	icon := stepIcon(step.Kind)
	yellow := color.New(color.FgYellow)
	yellow.Fprintf(c.out, "%2d. %s %s", index+1, icon, step.Name)

	if step.Target != "" {
		dim := color.New(color.Faint)
		dim.Fprintf(c.out, "  %s", truncate(step.Target, 60))
	}
	fmt.Fprintln(c.out)
}

func (c *Console) StepFinished(index int, step entity.Step, elapsed time.Duration, err error) {
	if err != nil {
		red := color.New(color.FgRed)
		red.Fprint(c.out, "    ✗ ")

		dim := color.New(color.Faint)
		dim.Fprintln(c.out, truncate(err.Error(), 300))
		return
	}
	green := color.New(color.FgGreen)
	green.Fprintf(c.out, "    ✓ %s\n", elapsed.Round(time.Millisecond))
}

func (c *Console) ScenarioFinished(result *entity.RunResult, err error) {
	if err != nil {
		red := color.New(color.FgRed, color.Bold)
		red.Fprintln(c.out, "FAILED")
		return
	}
	green := color.New(color.FgGreen, color.Bold)
	green.Fprintf(c.out, "PASSED in %s", result.Duration.Round(time.Millisecond))
	if result.Screenshot != "" {
		fmt.Fprintf(c.out, " → %s", result.Screenshot)
	}
	fmt.Fprintln(c.out)
}

// WaitForUserAction blocks until Enter is read or ctx is done.
func (c *Console) WaitForUserAction(ctx context.Context, message string) error {
	magenta := color.New(color.FgMagenta, color.Bold)
	magenta.Fprintf(c.out, "\n[ACTION] %s\n", message)
	fmt.Fprint(c.out, "Press Enter to continue...")

	c.readOnce.Do(func() { go c.readLines() })

	select {
	case err := <-c.lines:
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to wait for user: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// readLines feeds c.lines until the input fails. Stdin reads cannot be
// interrupted, so on cancel the goroutine stays parked until the next line
// or EOF.
func (c *Console) readLines() {
	for {
		_, err := c.in.ReadString('\n')
		c.lines <- err
		if err != nil {
			close(c.lines)
			return
		}
	}
}

func stepIcon(kind entity.StepKind) string {
	switch kind {
	case entity.StepNavigate:
		return "🌐"
	case entity.StepClick, entity.StepForceClick:
		return "🖱️"
	case entity.StepPressKey:
		return "⌨️"
	case entity.StepScreenshot:
		return "📸"
	default:
		return "⏳"
	}
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len([]rune(s)) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}
