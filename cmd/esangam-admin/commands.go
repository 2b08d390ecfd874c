package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Esangam/Esangam-UI/internal/adapters/filestore"
	"github.com/Esangam/Esangam-UI/internal/backend"
	"github.com/Esangam/Esangam-UI/internal/bootstrap"
	domainauth "github.com/Esangam/Esangam-UI/internal/domain/auth"
	"github.com/Esangam/Esangam-UI/internal/notify"
	"github.com/Esangam/Esangam-UI/internal/service"
)

const (
	envCredentials = "ESANGAM_CREDENTIALS"
	envPassword    = "ESANGAM_PASSWORD"

	// watchPoll is how often watch checks whether the stream has closed.
	watchPoll = time.Second
)

var errNotLoggedIn = errors.New("not logged in; run esangam-admin login")

// cliSession is the single session manager of this process, persisted to a credentials file.
type cliSession struct {
	client  *backend.Client
	store   *filestore.TokenStore
	manager *service.SessionManager
}

func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	path := fs.String("credentials", os.Getenv(envCredentials), "credentials file (default: user config dir)")
	return fs, path
}

func openSession(cmdCtx *commandContext, path string) (*cliSession, error) {
	if strings.TrimSpace(path) == "" {
		var err error
		if path, err = filestore.DefaultPath(); err != nil {
			return nil, err
		}
	}
	store, err := filestore.NewTokenStore(path)
	if err != nil {
		return nil, err
	}
	client, err := bootstrap.NewBackendClient(cmdCtx.Config.Backend, cmdCtx.Logger)
	if err != nil {
		return nil, err
	}
	return &cliSession{
		client: client,
		store:  store,
		manager: service.NewSessionManager(service.SessionManagerOptions{
			Identity: client,
			Storage:  store,
			Logger:   cmdCtx.Logger,
		}),
	}, nil
}

// restore resolves the stored token and applies policy to the result.
func (s *cliSession) restore(cmdCtx *commandContext, policy domainauth.Policy) (domainauth.UserIdentity, error) {
	s.manager.Restore(cmdCtx.Ctx)
	snap := s.manager.Snapshot()
	switch domainauth.Decide(snap, policy) {
	case domainauth.DecisionRender:
		if snap.User == nil {
			return domainauth.UserIdentity{}, errNotLoggedIn
		}
		return *snap.User, nil
	case domainauth.DecisionHome:
		return domainauth.UserIdentity{}, fmt.Errorf("%s is not allowed to run this command", snap.User.Label())
	default:
		return domainauth.UserIdentity{}, errNotLoggedIn
	}
}

func passwordFrom(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(envPassword)
}

func runBootstrapAdmin(cmdCtx *commandContext, args []string) error {
	fs, _ := newFlagSet("bootstrap-admin")
	mobile := fs.String("mobile", "", "mobile number of the new ES_ADMIN")
	password := fs.String("password", "", "password (or "+envPassword+")")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := bootstrap.NewBackendClient(cmdCtx.Config.Backend, cmdCtx.Logger)
	if err != nil {
		return err
	}
	platform := service.NewPlatformService(service.PlatformServiceOptions{API: client, Logger: cmdCtx.Logger})
	pw := passwordFrom(*password)
	msg, err := platform.BootstrapAdmin(cmdCtx.Ctx, *mobile, pw, pw)
	if err != nil {
		return err
	}
	return writef(cmdCtx.Out, "%s\n", msg)
}

func runLogin(cmdCtx *commandContext, args []string) error {
	fs, path := newFlagSet("login")
	mobile := fs.String("mobile", "", "mobile number")
	password := fs.String("password", "", "password (or "+envPassword+")")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession(cmdCtx, *path)
	if err != nil {
		return err
	}
	if err := s.manager.Login(cmdCtx.Ctx, *mobile, passwordFrom(*password)); err != nil {
		if errors.Is(err, service.ErrLoginFailed) {
			return errors.New(service.MsgLoginFailed)
		}
		return err
	}
	u, _ := s.manager.User()
	return writef(cmdCtx.Out, "Logged in as %s\nCredentials stored in %s\n", u.Label(), s.store.Path())
}

func runLogout(cmdCtx *commandContext, args []string) error {
	fs, path := newFlagSet("logout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := openSession(cmdCtx, *path)
	if err != nil {
		return err
	}
	if err := s.manager.Logout(cmdCtx.Ctx); err != nil {
		return err
	}
	return writef(cmdCtx.Out, "Logged out\n")
}

func runWhoami(cmdCtx *commandContext, args []string) error {
	fs, path := newFlagSet("whoami")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := openSession(cmdCtx, *path)
	if err != nil {
		return err
	}
	u, err := s.restore(cmdCtx, domainauth.Authenticated())
	if err != nil {
		return err
	}
	return writef(cmdCtx.Out, "%s\nDashboard: %s\n", u.Label(), u.Role.LandingPath())
}

func runSocieties(cmdCtx *commandContext, args []string) error {
	fs, path := newFlagSet("societies")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := openSession(cmdCtx, *path)
	if err != nil {
		return err
	}
	if _, err := s.restore(cmdCtx, domainauth.RequireRoles(domainauth.RolePlatformAdmin)); err != nil {
		return err
	}

	platform := service.NewPlatformService(service.PlatformServiceOptions{API: s.client, Logger: cmdCtx.Logger})
	societies, err := platform.Societies(cmdCtx.Ctx, s.manager)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmdCtx.Out, 0, 0, 2, ' ', 0)
	if err := writef(tw, "ID\tNAME\tDESCRIPTION\n"); err != nil {
		return err
	}
	for _, soc := range societies {
		if err := writef(tw, "%d\t%s\t%s\n", soc.ID, soc.Name, soc.Description); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// runWatch prints each notification once and dismisses it. It returns when the
// context is cancelled or the stream closes; there is no reconnect.
func runWatch(cmdCtx *commandContext, args []string) error {
	fs, path := newFlagSet("watch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := openSession(cmdCtx, *path)
	if err != nil {
		return err
	}
	u, err := s.restore(cmdCtx, domainauth.Authenticated())
	if err != nil {
		return err
	}

	ch := notify.NewChannel(notify.Options{Streamer: s.client, Logger: cmdCtx.Logger})
	defer ch.Close()
	changes, unsubscribe := ch.Subscribe()
	defer unsubscribe()
	unbind := notify.Bind(s.manager, ch)
	defer unbind()

	if err := writef(cmdCtx.Out, "Watching notifications for %s (Ctrl-C to stop)\n", u.Label()); err != nil {
		return err
	}

	flush := func() error {
		for _, m := range ch.Messages() {
			if err := writef(cmdCtx.Out, "[%s] %s\n", m.ReceivedAt.Format(time.TimeOnly), m.Text); err != nil {
				return err
			}
			ch.Dismiss(m.ID)
		}
		return nil
	}

	ticker := time.NewTicker(watchPoll)
	defer ticker.Stop()
	for {
		select {
		case <-cmdCtx.Ctx.Done():
			return nil
		case <-changes:
			if err := flush(); err != nil {
				return err
			}
		case <-ticker.C:
			if ch.State() == notify.StateClosed {
				if err := flush(); err != nil {
					return err
				}
				return errors.New("notification stream closed")
			}
		}
	}
}
