package geo

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"openway/internal/model"
)

// TerminalPrompt asks the user on a terminal. It satisfies Authorizer,
// PermissionRequester and Alerter so the CLI can stand in for the OS.
type TerminalPrompt struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer

	// pending is the read left running by a cancelled ask. At most one read
	// is outstanding; the next ask takes its line.
	pending chan promptAnswer
}

type promptAnswer struct {
	line string
	err  error
}

func NewTerminalPrompt(in io.Reader, out io.Writer) *TerminalPrompt {
	return &TerminalPrompt{in: bufio.NewReader(in), out: out}
}

func (p *TerminalPrompt) RequestAuthorization(ctx context.Context, scope string) (string, error) {
	return p.ask(ctx, fmt.Sprintf("Allow location access (%s)? [y/N] ", scope))
}

func (p *TerminalPrompt) RequestPermission(ctx context.Context, permission string) (string, error) {
	return p.ask(ctx, fmt.Sprintf("Grant %s? [y/N] ", permission))
}

func (p *TerminalPrompt) Alert(title, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "%s: %s\n", title, message)
}

func (p *TerminalPrompt) ask(ctx context.Context, question string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprint(p.out, question)

	ch := p.pending
	if ch == nil {
		ch = make(chan promptAnswer, 1)
		go func() {
			line, err := p.in.ReadString('\n')
			ch <- promptAnswer{line, err}
		}()
	}

	select {
	case <-ctx.Done():
		p.pending = ch
		return "", ctx.Err()
	case a := <-ch:
		p.pending = nil
		if a.err != nil && a.err != io.EOF {
			return "", fmt.Errorf("read answer: %w", a.err)
		}
		switch strings.ToLower(strings.TrimSpace(a.line)) {
		case "y", "yes":
			return model.PermissionGranted, nil
		default:
			return model.PermissionDenied, nil
		}
	}
}
