// Package terminal reports whether modsync may prompt the user.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// EnvNoPrompt disables every interactive prompt when set to a non-empty value.
const EnvNoPrompt = "MODSYNC_NO_PROMPT"

// IsInteractive reports whether stdin and stdout are both terminals and prompts are not disabled.
func IsInteractive() bool {
	if os.Getenv(EnvNoPrompt) != "" {
		return false
	}
	return Files(os.Stdin, os.Stdout)
}

// Files reports whether both files are terminals.
func Files(in *os.File, out *os.File) bool {
	if in == nil || out == nil {
		return false
	}
	return term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd()))
}
