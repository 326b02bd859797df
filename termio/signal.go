package termio

// signalKind names one of the three terminal-generated signals getch can
// either capture as a key or let through to the process.
type signalKind int

const (
	sigInt signalKind = iota
	sigTstp
	sigQuit
)
