package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"edurpg/internal/engine"
)

// Console is a line-oriented engine.Prompter over a reader and a writer.
// Invalid input is answered with a warning and the question is asked again.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

var _ engine.Prompter = (*Console)(nil)

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

func (c *Console) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) Choose(ctx context.Context, title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("choose %q: no options", title)
	}
	for {
		fmt.Fprintln(c.out, H2.Render(title))
		for i, o := range options {
			fmt.Fprintf(c.out, "  %s %s\n", Key.Render(strconv.Itoa(i+1)+"."), o)
		}
		fmt.Fprint(c.out, Muted.Render(fmt.Sprintf("Choose [1-%d]: ", len(options))))

		line, err := c.readLine(ctx)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(options) {
			fmt.Fprintln(c.out, Warn.Render(fmt.Sprintf("Please enter a number between 1 and %d.", len(options))))
			continue
		}
		return n - 1, nil
	}
}

// Text returns one trimmed line, which may be empty. A blank battle answer is
// a miss, not a reason to ask again while the answer clock runs.
func (c *Console) Text(ctx context.Context, prompt string) (string, error) {
	fmt.Fprintln(c.out, prompt)
	fmt.Fprint(c.out, Key.Render("> "))
	return c.readLine(ctx)
}

// Required is Text that asks again until the line is not blank.
func (c *Console) Required(ctx context.Context, prompt string) (string, error) {
	for {
		line, err := c.Text(ctx, prompt)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		fmt.Fprintln(c.out, Warn.Render("Please enter a value."))
	}
}

func (c *Console) Confirm(ctx context.Context, prompt string) (bool, error) {
	for {
		fmt.Fprint(c.out, prompt+" "+Muted.Render("[y/n]: "))
		line, err := c.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(c.out, Warn.Render("Please answer y or n."))
	}
}

func (c *Console) Notify(severity engine.Severity, message string) {
	fmt.Fprintln(c.out, SeverityStyle(severity).Render(message))
}
