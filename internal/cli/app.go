package cli

import (
	"bufio"
	"io"
	"os"

	"github.com/dmitrijs2005/passlock/internal/config"
	"github.com/dmitrijs2005/passlock/internal/logging"
	"github.com/dmitrijs2005/passlock/internal/session"
)

// App ties the REPL to one vault session.
type App struct {
	config  *config.Config
	log     logging.Logger
	session *session.Session
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config, log logging.Logger) *App {
	return &App{
		config:  c,
		log:     log.With("component", "cli"),
		session: session.New(c.VaultPath, log),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// Run starts the REPL and guarantees the session is wiped when it returns.
func (a *App) Run() {
	defer a.session.Close()
	a.Root()
}
