// Package gate holds the checkpoint between scanning and sweeping. Nothing
// is deleted unless the gate has been confirmed, either by the caller's
// bypass flag or by an affirmative answer at the prompt.
package gate

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

type State int

const (
	Idle State = iota
	Scanned
	Confirmed
	Declined
	Sweeping
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scanned:
		return "scanned"
	case Confirmed:
		return "confirmed"
	case Declined:
		return "declined"
	case Sweeping:
		return "sweeping"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var ErrCancelled = errors.New("operation cancelled by user")

// TransitionError is returned when an operation is attempted from a state
// that does not allow it.
type TransitionError struct {
	From State
	To   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("gate: cannot move from %s to %s", e.From, e.To)
}

// Summary is what the prompt shows about the pending sweep.
type Summary struct {
	Files uint64
	Bytes uint64
	Mode  string
	// Paths is the full matched list; only the first PreviewLimit entries
	// are printed.
	Paths []string
}

type Gate struct {
	state  State
	bypass bool
	in     *bufio.Reader
	out    io.Writer
}

// New returns an idle gate. With bypass set, Confirm never prompts.
func New(bypass bool, in io.Reader, out io.Writer) *Gate {
	if in == nil {
		in = strings.NewReader("")
	}
	if out == nil {
		out = io.Discard
	}
	return &Gate{bypass: bypass, in: bufio.NewReader(in), out: out}
}

func (g *Gate) State() State { return g.state }

// Scanned records the scan outcome. It reports false, and closes the gate,
// when nothing matched.
func (g *Gate) Scanned(files uint64) (bool, error) {
	if g.state != Idle {
		return false, &TransitionError{From: g.state, To: Scanned}
	}
	if files == 0 {
		g.state = Done
		return false, nil
	}
	g.state = Scanned
	return true, nil
}

// Confirm asks for permission to sweep. A declined or unreadable answer,
// or ctx ending while the prompt waits, leaves the gate Declined and
// returns an error matching ErrCancelled.
func (g *Gate) Confirm(ctx context.Context, s Summary) error {
	if g.state != Scanned {
		return &TransitionError{From: g.state, To: Confirmed}
	}
	if g.bypass {
		logrus.Debug("confirmation bypassed")
		g.state = Confirmed
		return nil
	}

	fmt.Fprintln(g.out, RenderBanner(s))
	fmt.Fprint(g.out, promptStyle.Render("Type 'yes' to continue: "))

	type reply struct {
		line string
		err  error
	}
	replies := make(chan reply, 1)
	go func() {
		line, err := g.in.ReadString('\n')
		replies <- reply{line, err}
	}()

	var answer reply
	select {
	case answer = <-replies:
	case <-ctx.Done():
		// The reader goroutine stays blocked until input arrives or closes.
		fmt.Fprintln(g.out)
		g.state = Declined
		return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	}

	if answer.err != nil && !errors.Is(answer.err, io.EOF) {
		g.state = Declined
		return fmt.Errorf("%w: read confirmation: %v", ErrCancelled, answer.err)
	}
	if !IsAffirmative(answer.line) {
		g.state = Declined
		return ErrCancelled
	}
	g.state = Confirmed
	return nil
}

func (g *Gate) BeginSweep() error {
	if g.state != Confirmed {
		return &TransitionError{From: g.state, To: Sweeping}
	}
	g.state = Sweeping
	return nil
}

// Finish closes the gate after a sweep or a declined prompt.
func (g *Gate) Finish() error {
	if g.state != Sweeping && g.state != Declined {
		return &TransitionError{From: g.state, To: Done}
	}
	g.state = Done
	return nil
}

// IsAffirmative is the only place that decides what counts as consent.
func IsAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "y":
		return true
	default:
		return false
	}
}
