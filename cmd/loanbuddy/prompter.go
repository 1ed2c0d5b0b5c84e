package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"loanbuddy/cmd/loanbuddy/ui"
)

// consolePrompter is the interactive implementation of the workflow's
// Prompter: free-text fields read a styled line from stdin, while yes/no
// questions and menus use huh forms.
type consolePrompter struct {
	in     *bufio.Reader
	out    io.Writer
	styles ui.Styles
}

func newConsolePrompter(styles ui.Styles) *consolePrompter {
	return &consolePrompter{
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		styles: styles,
	}
}

func (p *consolePrompter) Ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s ", p.styles.Prompt.Render(label+":"))
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("input closed: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *consolePrompter) Confirm(question string) (bool, error) {
	var yes bool
	err := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&yes).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirmation aborted: %w", err)
	}
	return yes, nil
}

func (p *consolePrompter) Select(title string, options []string) (int, error) {
	opts := make([]huh.Option[int], len(options))
	for i, label := range options {
		opts[i] = huh.NewOption(label, i)
	}

	var choice int
	err := huh.NewSelect[int]().
		Title(title).
		Options(opts...).
		Value(&choice).
		Run()
	if err != nil {
		return 0, fmt.Errorf("selection aborted: %w", err)
	}
	return choice, nil
}

func (p *consolePrompter) Say(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.styles.BotReply.Render(fmt.Sprintf(format, args...)))
}

func (p *consolePrompter) ShowField(label, value string) {
	fmt.Fprintf(p.out, "  %s %s\n", p.styles.Muted.Render(label+":"), p.styles.Field.Render(value))
}
