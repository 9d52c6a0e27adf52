package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/syspark/internal/client/config"
	"github.com/dmitrijs2005/syspark/internal/client/crud"
	"github.com/dmitrijs2005/syspark/internal/client/gateway"
	"github.com/dmitrijs2005/syspark/internal/client/models"
	"github.com/dmitrijs2005/syspark/internal/client/session"
	"github.com/dmitrijs2005/syspark/internal/client/storage"
	"github.com/dmitrijs2005/syspark/internal/client/users"
	"github.com/dmitrijs2005/syspark/internal/logging"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	api     *gateway.Client
	session *session.Provider
	users   *crud.Orchestrator[models.Account]
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the session database and builds the API stack described by c.
func NewApp(ctx context.Context, c *config.Config, l logging.Logger) (*App, error) {
	return newApp(ctx, c, l, os.Stdin, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, l logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	db, err := storage.Open(ctx, c.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	api, err := gateway.New(c.APIBaseURL, gateway.WithTimeout(c.RequestTimeout), gateway.WithLogger(l))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	sp := session.NewProvider(api, session.NewSQLiteStore(db), session.WithLogger(l))
	orch := crud.New[models.Account](users.NewResource(api, sp), users.Schema, users.Fields{},
		crud.WithPageSize[models.Account](c.PageSize),
		crud.WithLogger[models.Account](l),
		crud.WithSanitizer(models.Account.Sanitized))

	return &App{
		config:  c,
		log:     l,
		db:      db,
		api:     api,
		session: sp,
		users:   orch,
		reader:  bufio.NewReader(in),
		out:     out,
	}, nil
}

// Run restores the previous session, shows the first page when logged in
// and serves commands until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	if err := a.session.Restore(ctx); err != nil {
		a.log.Warn(ctx, "could not restore session", "error", err)
	}

	a.println("Welcome to SysPark admin (type 'help' for commands)")
	if a.isLoggedIn() {
		a.println("Logged in as", a.session.Username())
		_ = a.List(ctx)
	} else {
		_ = a.Login(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Status() == session.StatusAuthenticated
}

func (a *App) getStatus() string {
	if name := a.session.Username(); name != "" && a.isLoggedIn() {
		return fmt.Sprintf("(%s)", name)
	}
	return "(" + a.session.Status().String() + ")"
}
