package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/lakshaymaurya-felt/venvsweep/internal/pipeline"
)

// PromptConfirmer asks on out and reads the answer from in. Only "y" or
// "yes" (any case) approves; an empty line or end of input means no.
type PromptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPromptConfirmer creates a confirmer over in and out.
func NewPromptConfirmer(in io.Reader, out io.Writer) *PromptConfirmer {
	return &PromptConfirmer{in: bufio.NewReader(in), out: out}
}

type answer struct {
	line string
	err  error
}

// Confirm implements pipeline.Confirmer. It returns ctx's error if ctx is
// cancelled while waiting for input.
func (p *PromptConfirmer) Confirm(ctx context.Context, r pipeline.Result) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(p.out, "    %s Delete %s (%s)? [y/N] ",
		WarningStyle().Render("?"), r.Record.Path, FormatSize(r.Record.SizeBytes))

	ch := make(chan answer, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		ch <- answer{line, err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return false, ctx.Err()
	case a := <-ch:
		if a.err != nil && a.err != io.EOF {
			return false, a.err
		}
		if a.err == io.EOF && a.line == "" {
			fmt.Fprintln(p.out)
		}
		return IsYes(a.line), nil
	}
}

// IsYes reports whether an answer approves deletion.
func IsYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}
