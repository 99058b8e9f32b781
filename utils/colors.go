package utils

// ANSI escape sequences used for the command line output.
const (
	DefaultColor = "\x1b[39m"
	SuccessColor = "\x1b[92m"
	ErrorColor   = "\x1b[91m"
)
