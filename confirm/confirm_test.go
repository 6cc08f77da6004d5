package confirm

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestIsAffirmative(t *testing.T) {
	for _, s := range []string{"y", "Y", "yes", " YES ", "yep", "yeah", "yup", "ok", "Okay", "sure", "true"} {
		if !IsAffirmative(s) {
			t.Errorf("expected %q to be affirmative", s)
		}
	}
	for _, s := range []string{"", "n", "no", "nope", "maybe", "yess", "1", "y e s"} {
		if IsAffirmative(s) {
			t.Errorf("expected %q to be negative", s)
		}
	}
}

func TestFixedProviders(t *testing.T) {
	ctx := context.Background()
	if ok, err := (AlwaysYes{}).Confirm(ctx, "?"); !ok || err != nil {
		t.Errorf("AlwaysYes = %v, %v", ok, err)
	}
	if ok, err := (AlwaysNo{}).Confirm(ctx, "?"); ok || err != nil {
		t.Errorf("AlwaysNo = %v, %v", ok, err)
	}
}

func TestInteractive(t *testing.T) {
	in := strings.NewReader("Sure\nnah\n")
	var out bytes.Buffer
	p := NewInteractive(in, &out)
	ctx := context.Background()

	answers := []bool{}
	for _, prompt := range []string{"Proceed?", "Single file?", "Per table?"} {
		ok, err := p.Confirm(ctx, prompt)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		answers = append(answers, ok)
	}
	if !answers[0] || answers[1] || answers[2] {
		t.Errorf("unexpected answers: %v", answers)
	}
	if !strings.Contains(out.String(), "Proceed? (y/N): ") || !strings.Contains(out.String(), "Per table? (y/N): ") {
		t.Errorf("unexpected prompts: %q", out.String())
	}
}

func TestInteractive_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	ok, err := NewInteractive(strings.NewReader("yes\n"), &out).Confirm(ctx, "Proceed?")
	if ok || err == nil {
		t.Errorf("expected cancellation error, got %v, %v", ok, err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no prompt after cancellation, got %q", out.String())
	}
}

func TestScripted(t *testing.T) {
	p := NewScripted(true, false)
	ctx := context.Background()
	a, _ := p.Confirm(ctx, "one")
	b, _ := p.Confirm(ctx, "two")
	c, _ := p.Confirm(ctx, "three")
	if !a || b || c {
		t.Errorf("unexpected answers: %v %v %v", a, b, c)
	}
	asked := p.Asked()
	if len(asked) != 3 || asked[0] != "one" || asked[2] != "three" {
		t.Errorf("unexpected prompts: %v", asked)
	}
}
