// Package confirm provides the yes/no answers an export run asks for before
// it touches the database.
package confirm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Provider answers a yes/no question.
type Provider interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

var affirmative = map[string]bool{
	"y":    true,
	"yes":  true,
	"yep":  true,
	"yeah": true,
	"yup":  true,
	"ok":   true,
	"okay": true,
	"sure": true,
	"true": true,
}

// IsAffirmative reports whether s is one of the accepted "yes" tokens,
// ignoring case and surrounding whitespace. Anything else is a no.
func IsAffirmative(s string) bool {
	return affirmative[strings.ToLower(strings.TrimSpace(s))]
}

// AlwaysYes answers yes to every prompt.
type AlwaysYes struct{}

func (AlwaysYes) Confirm(context.Context, string) (bool, error) { return true, nil }

// AlwaysNo answers no to every prompt.
type AlwaysNo struct{}

func (AlwaysNo) Confirm(context.Context, string) (bool, error) { return false, nil }

// Interactive writes each prompt to Out and reads one line from In.
// End of input counts as no.
type Interactive struct {
	out     io.Writer
	scanner *bufio.Scanner
}

// NewInteractive returns a provider reading answers line by line from in.
func NewInteractive(in io.Reader, out io.Writer) *Interactive {
	return &Interactive{out: out, scanner: bufio.NewScanner(in)}
}

func (p *Interactive) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, err := fmt.Fprintf(p.out, "%s (y/N): ", prompt); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return false, fmt.Errorf("read answer: %w", err)
		}
		return false, nil
	}
	return IsAffirmative(p.scanner.Text()), nil
}

// Scripted replays a fixed list of answers and records the prompts it was
// asked. Once the answers run out every further prompt gets no.
type Scripted struct {
	mu      sync.Mutex
	answers []bool
	asked   []string
}

// NewScripted returns a provider that answers with answers in order.
func NewScripted(answers ...bool) *Scripted {
	return &Scripted{answers: answers}
}

func (p *Scripted) Confirm(_ context.Context, prompt string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := len(p.asked)
	p.asked = append(p.asked, prompt)
	if i < len(p.answers) {
		return p.answers[i], nil
	}
	return false, nil
}

// Asked returns the prompts seen so far, in order.
func (p *Scripted) Asked() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.asked...)
}
