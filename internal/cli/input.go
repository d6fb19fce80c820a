package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/sozarusac/callaudio/internal/config"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// fillPasswords prompts once for the shared fleet password when some
// configured server has none and stdin is a terminal. The fleet shares
// one SFTP account, so the answer fills every profile left blank by the
// config file and environment.
func fillPasswords(cfg *config.Config) {
	missing := false
	for _, s := range cfg.Servers {
		if s.Password == "" {
			missing = true
			break
		}
	}
	if !missing || !isTerminal(int(os.Stdin.Fd())) {
		return
	}

	fmt.Fprint(os.Stderr, "SFTP password: ")
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil || len(b) == 0 {
		return
	}

	for i := range cfg.Servers {
		if cfg.Servers[i].Password == "" {
			cfg.Servers[i].Password = string(b)
		}
	}
}
