package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fleveque/store-context/internal/llm"
	"github.com/fleveque/store-context/internal/model"
	"github.com/fleveque/store-context/internal/service"
)

// Lookuper is the one operation the session needs. *service.LookupService
// satisfies it.
type Lookuper interface {
	Lookup(ctx context.Context, identifier string) (*model.LookupResult, error)
}

// Session is the interactive prompt loop: ask for a store, show what is
// known about it, and ask whether to continue.
type Session struct {
	lookuper Lookuper
	in       *bufio.Reader
	out      io.Writer
	logger   *zap.Logger
	now      func() time.Time
}

// NewSession reads answers from in and writes prompts and results to out.
func NewSession(lookuper Lookuper, in io.Reader, out io.Writer, logger *zap.Logger) *Session {
	return &Session{
		lookuper: lookuper,
		in:       bufio.NewReader(in),
		out:      out,
		logger:   logger,
		now:      time.Now,
	}
}

// Run loops until the user declines to continue, input ends, or ctx is
// cancelled. Lookup failures are shown to the user, not returned; only
// write failures on out end the session with an error.
func (s *Session) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		identifier, ok := s.ask("Enter a store name or URL: ")
		if !ok {
			return s.goodbye()
		}

		result, err := s.lookuper.Lookup(ctx, identifier)
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			if err := RenderError(s.out, fmt.Sprintf("Please enter 1 to %d characters.", model.MaxIdentifierLength)); err != nil {
				return err
			}
			continue

		case err != nil:
			s.logger.Debug("lookup failed", zap.String("identifier", identifier), zap.Error(err))
			if err := RenderError(s.out, describeError(err)); err != nil {
				return err
			}
			if !s.confirm("Try again? (y/n): ") {
				return s.goodbye()
			}
			continue
		}

		if err := Render(s.out, result, s.now()); err != nil {
			return err
		}
		if !s.confirm("Look up another store? (y/n): ") {
			return s.goodbye()
		}
	}
	return s.goodbye()
}

// ask prints prompt and reads one line of any length. ok is false once input
// is exhausted.
func (s *Session) ask(prompt string) (string, bool) {
	fmt.Fprint(s.out, promptStyle.Render(prompt))
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		if !errors.Is(err, io.EOF) {
			s.logger.Debug("reading input", zap.Error(err))
		}
		fmt.Fprintln(s.out)
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

// confirm asks a yes/no question until it gets an answer. End of input
// counts as no.
func (s *Session) confirm(prompt string) bool {
	for {
		answer, ok := s.ask(prompt)
		if !ok {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		fmt.Fprintln(s.out, dimStyle.Render("Please answer y or n."))
	}
}

func (s *Session) goodbye() error {
	_, err := fmt.Fprintln(s.out, dimStyle.Render("Goodbye."))
	return err
}

// describeError turns a lookup failure into a message for the user.
func describeError(err error) string {
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		return "The language model service rejected the request: " + apiErr.Error()
	}

	var remoteErr *llm.RemoteError
	if errors.As(err, &remoteErr) {
		if remoteErr.Timeout() {
			return "The language model service timed out."
		}
		return "Could not reach the language model service."
	}

	return "Lookup failed: " + err.Error()
}
