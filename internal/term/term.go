package term

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

// Term describes the streams a command reads from and writes to.
type Term struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	outF   *os.File
}

func System() *Term {
	return FromIO(os.Stdin, os.Stdout, os.Stderr)
}

// FromIO wraps the given streams. Only an *os.File output can be a TTY.
func FromIO(in io.Reader, out, errOut io.Writer) *Term {
	t := &Term{in: in, out: out, errOut: errOut}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.outF = f
	}
	return t
}

func (t *Term) In() io.Reader     { return t.in }
func (t *Term) Out() io.Writer    { return t.out }
func (t *Term) ErrOut() io.Writer { return t.errOut }

func (t *Term) IsTTY() bool { return t.outF != nil }

// Color reports whether escape sequences may be written to Out.
func (t *Term) Color() bool {
	_, noColor := os.LookupEnv("NO_COLOR")
	return t.IsTTY() && !noColor
}

func (t *Term) Size() (int, int, error) {
	if !t.IsTTY() {
		return -1, -1, errors.New("not a tty")
	}
	w, h, err := term.GetSize(int(t.outF.Fd()))
	return w, h, errors.WithStack(err)
}

// Width returns the terminal width or DefaultWidth.
func (t *Term) Width() int {
	w, _, err := t.Size()
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}
