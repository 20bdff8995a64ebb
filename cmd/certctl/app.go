package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/certchain/certificate-system/internal/pkg/config"
	"github.com/certchain/certificate-system/internal/session"
	"github.com/certchain/certificate-system/pkg/certclient"
	"github.com/certchain/certificate-system/pkg/logger"
)

// app is the state shared by every screen of one invocation.
type app struct {
	out    io.Writer
	errOut io.Writer

	// flags
	apiURL   string
	code     string
	password string
	logLevel string

	cfg    *config.Config
	log    zerolog.Logger
	holder *session.Holder
}

func newApp(out, errOut io.Writer) *app {
	return &app{out: out, errOut: errOut, log: zerolog.Nop()}
}

// setup loads the environment, applies flag overrides and builds the
// session holder. Flags win over CERT_* variables.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIURL = strings.TrimRight(a.apiURL, "/")
	}
	if a.code != "" {
		cfg.Code = a.code
	}
	if a.password != "" {
		cfg.Password = a.password
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	a.log = zerolog.New(zerolog.ConsoleWriter{Out: a.errOut, NoColor: true}).
		Level(logger.ParseLevel(cfg.LogLevel)).
		With().
		Timestamp().
		Logger()

	client := certclient.New(cfg.APIURL,
		certclient.WithLogger(a.log.With().Str("component", "certclient").Logger()),
		certclient.WithUserAgent("certctl"),
	)
	a.holder = session.NewHolder(client,
		session.WithNotifier(toastNotifier{w: a.errOut}),
		session.WithLogger(a.log.With().Str("component", "session").Logger()),
	)
	return nil
}

// signIn authenticates with the configured credentials.
func (a *app) signIn(ctx context.Context) (session.Session, error) {
	if a.cfg.Code == "" {
		return session.Session{}, fmt.Errorf("no login code: pass --code or set CERT_CODE")
	}
	if a.cfg.Password == "" {
		return session.Session{}, fmt.Errorf("no password: pass --password or set CERT_PASSWORD")
	}

	if err := a.holder.SignIn(ctx, session.Credentials{Code: a.cfg.Code, Password: a.cfg.Password}); err != nil {
		return session.Session{}, err
	}
	s, _ := a.holder.Current()
	return s, nil
}

// signInAs signs in and refuses sessions whose role is not one of roles.
func (a *app) signInAs(ctx context.Context, screen string, roles ...string) (session.Session, error) {
	s, err := a.signIn(ctx)
	if err != nil {
		return s, err
	}
	if !slices.Contains(roles, s.Role) {
		a.holder.SignOut()
		return session.Session{}, fmt.Errorf("%s commands need role %s, signed in as %s", screen, strings.Join(roles, " or "), s.Role)
	}
	return s, nil
}

// client returns the client bound to the current session.
func (a *app) client() *certclient.Client {
	return a.holder.Client()
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func main() {
	root := newRootCmd(newApp(os.Stdout, os.Stderr))
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
