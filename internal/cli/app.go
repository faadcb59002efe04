package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/storekeeper/internal/commands"
	"github.com/dmitrijs2005/storekeeper/internal/config"
	"github.com/dmitrijs2005/storekeeper/internal/logging"
	"github.com/dmitrijs2005/storekeeper/internal/records/backends"
	"github.com/dmitrijs2005/storekeeper/internal/repositories"
	"github.com/dmitrijs2005/storekeeper/internal/services"
	"github.com/dmitrijs2005/storekeeper/internal/timex"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// executor runs one command. *commands.Dispatcher satisfies it.
type executor interface {
	Execute(ctx context.Context, cmd commands.Command) (commands.Result, error)
}

type App struct {
	config      *config.Config
	log         logging.Logger
	authService services.AuthService
	exec        executor
	reader      *bufio.Reader
	out         io.Writer
	printer     *message.Printer
	userName    string
	close       func() error
}

// NewApp opens the configured containers, creating any that are missing,
// and wires the services on top of them.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, closeFn, err := backends.Open(ctx, c.Locations())
	if err != nil {
		log.Error(ctx, "error opening record store", "error", err)
		return nil, err
	}
	log.Info(ctx, "record store ready", "format", c.Format, "data_dir", c.DataDir)

	users := repositories.NewUserRepository(store)
	branches := repositories.NewBranchRepository(store)
	sales := repositories.NewSaleRepository(store)

	clock := timex.Clock(time.Now)

	app := &App{
		config:      c,
		log:         log,
		authService: services.NewAuthService(users, log),
		exec:        commands.NewDispatcher(branches, sales, clock, log),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		printer:     message.NewPrinter(language.English),
		close:       closeFn,
	}
	return app, nil
}

// Run logs the operator in and serves the menu until logout or end of input.
func (a *App) Run(ctx context.Context) error {
	if a.close != nil {
		defer func() {
			if err := a.close(); err != nil {
				a.log.Error(ctx, "error closing record store", "error", err)
			}
		}()
	}

	if err := a.loginLoop(ctx); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return a.menuLoop(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}
