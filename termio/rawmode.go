package termio

import "golang.org/x/term"

// RawMode holds the attributes EnterRawMode saved for fd; its Restore method
// must be called on every exit path to put the terminal back exactly as it was,
// per spec.md §4.3's guarantee ("terminal attributes are restored on any
// exit, including panics").
type RawMode struct {
	fd    int
	state *term.State
}

// EnterRawMode saves fd's current attributes and switches it to raw mode.
func EnterRawMode(fd int) (*RawMode, error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &RawMode{fd: fd, state: state}, nil
}

// Restore puts fd back to its attributes from before EnterRawMode. Safe to
// call more than once; only the first call has an effect.
func (r *RawMode) Restore() error {
	if r == nil || r.state == nil {
		return nil
	}
	err := term.Restore(r.fd, r.state)
	r.state = nil
	return err
}
