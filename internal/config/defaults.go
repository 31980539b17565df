package config

// DefaultShell falls back to /bin/sh when $SHELL is unset.
const DefaultShell = "/bin/sh"

// DefaultTermEnv is the TERM value advertised to the child process.
const DefaultTermEnv = "xterm-256color"

// DefaultRows is the initial grid row count.
const DefaultRows = 24

// DefaultCols is the initial grid column count.
const DefaultCols = 80

// DefaultMaxScrollback is the bounded scrollback capacity, in lines.
const DefaultMaxScrollback = 1000

// DefaultLogLevel is the default logging verbosity.
const DefaultLogLevel = "info"
