// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-console-client/internal/apiclient"
	"github.com/MKhiriev/go-console-client/internal/authz"
	"github.com/MKhiriev/go-console-client/internal/config"
	"github.com/MKhiriev/go-console-client/internal/events"
	"github.com/MKhiriev/go-console-client/internal/logger"
	"github.com/MKhiriev/go-console-client/internal/metrics"
	"github.com/MKhiriev/go-console-client/internal/navigation"
	"github.com/MKhiriev/go-console-client/internal/service"
	"github.com/MKhiriev/go-console-client/internal/store"
	"github.com/MKhiriev/go-console-client/internal/workers"
	"github.com/MKhiriev/go-console-client/models"
)

// ErrUsage is returned for an unknown command or wrong operands.
var ErrUsage = errors.New("usage")

const usage = `commands:
  login <email> <password>
  logout
  whoami
  get <path>
  <resource> list [search] [page]
  <resource> get <id>
  <resource> delete <id>`

type App struct {
	cfg *config.StructuredConfig

	storages *store.Storages
	bus      *events.Bus
	router   *navigation.Router
	tracker  *authz.Tracker
	registry *prometheus.Registry
	api      *apiclient.Client
	services *service.Services
	workers  *workers.Workers

	natsClient *events.NATSClient
	closers    []func()
	closeOnce  sync.Once
	closeErr   error

	out    io.Writer
	logger *logger.Logger
}

// NewApp builds the application from cfg. Command output goes to out.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, out io.Writer, log *logger.Logger) (*App, error) {
	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}

	a := &App{
		cfg:      cfg,
		storages: storages,
		bus:      events.NewBus(log),
		router:   navigation.NewRouter("/", log),
		tracker:  authz.NewTracker(0),
		registry: prometheus.NewRegistry(),
		out:      out,
		logger:   log,
	}

	a.api = apiclient.New(cfg.API, apiclient.Deps{
		Credentials: storages.Credentials,
		Publisher:   a.bus,
		Navigator:   a.router,
		Tracker:     a.tracker,
		Metrics:     metrics.New(a.registry),
	}, log.GetChildLogger())

	a.services = service.NewServices(a.api, storages.Credentials, a.tracker, cfg.API, log)
	a.workers = workers.NewWorkers(
		workers.NewTokenRefreshJob(a.api, storages.Credentials, cfg.Workers, log.GetChildLogger()),
	)

	a.closers = append(a.closers,
		a.bus.Subscribe(events.TopicVersionOutdated, a.services.Auth.HandleVersionOutdated),
		a.bus.Subscribe(events.TopicProfileUpdated, a.services.Auth.HandleProfileUpdated),
		a.router.OnNavigate(a.onNavigate),
	)

	if cfg.Events.NATSURL != "" {
		a.startForwarding()
	}

	return a, nil
}

func (a *App) startForwarding() {
	nc, err := events.NewNATSClient(a.cfg.Events.NATSURL)
	if err != nil {
		a.logger.Warn().Err(err).Msg("nats unavailable, auth events stay local")
		return
	}
	a.natsClient = nc
	a.closers = append(a.closers, events.NewForwarder(a.bus, nc, a.cfg.Events.SubjectPrefix, a.logger).Start())
}

func (a *App) onNavigate(_, to string) {
	if to == a.cfg.API.LoginRoute {
		fmt.Fprintln(a.out, "Session expired. Sign in again with: login <email> <password>")
	}
}

// Run executes the command in args.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w:\n%s", ErrUsage, usage)
	}
	if route := "/" + args[0]; route != a.cfg.API.LoginRoute {
		a.router.Navigate(route)
	}

	if args[0] != "login" {
		if _, err := a.services.Auth.RestoreSession(ctx); err != nil && !errors.Is(err, service.ErrNotAuthenticated) {
			a.logger.Warn().Err(err).Msg("failed to restore session")
		}
	}

	a.workers.Run(ctx)
	defer a.workers.Stop()
	defer a.services.Auth.Wait()

	switch args[0] {
	case "login":
		return a.login(ctx, args[1:])
	case "logout":
		if err := a.services.Auth.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Signed out.")
		return nil
	case "whoami":
		profile, err := a.services.Auth.Me(ctx)
		if err != nil {
			return err
		}
		return a.print(profile)
	case "get":
		if len(args) != 2 {
			return fmt.Errorf("%w: get <path>", ErrUsage)
		}
		resp, err := a.api.Get(ctx, args[1])
		if err != nil {
			return err
		}
		return a.print(resp.Data)
	}

	return a.collection(ctx, args)
}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: login <email> <password>", ErrUsage)
	}
	profile, err := a.services.Auth.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	name := args[0]
	if profile.User != nil && profile.User.Name != "" {
		name = profile.User.Name
	}
	fmt.Fprintf(a.out, "Signed in as %s.\n", name)
	return nil
}

func (a *App) collection(ctx context.Context, args []string) error {
	c, err := a.services.Collection(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w\n%s", ErrUsage, err, usage)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: %s list|get|delete", ErrUsage, args[0])
	}

	switch args[1] {
	case "list":
		params, err := listParams(args[2:])
		if err != nil {
			return err
		}
		page, err := c.ListAny(ctx, params)
		if err != nil {
			return err
		}
		return a.print(page)
	case "get":
		if len(args) != 3 {
			return fmt.Errorf("%w: %s get <id>", ErrUsage, args[0])
		}
		v, err := c.GetAny(ctx, args[2])
		if err != nil {
			return err
		}
		return a.print(v)
	case "delete":
		if len(args) != 3 {
			return fmt.Errorf("%w: %s delete <id>", ErrUsage, args[0])
		}
		if err = c.Delete(ctx, args[2]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Deleted %s/%s.\n", strings.TrimPrefix(c.Path(), "/"), args[2])
		return nil
	}
	return fmt.Errorf("%w: %s list|get|delete", ErrUsage, args[0])
}

func listParams(args []string) (models.ListParams, error) {
	var p models.ListParams
	if len(args) > 0 {
		p.Search = args[0]
	}
	if len(args) > 1 {
		page, err := strconv.Atoi(args[1])
		if err != nil || page < 1 {
			return p, fmt.Errorf("%w: page must be a positive number", ErrUsage)
		}
		p.Page = page
	}
	if len(args) > 2 {
		return p, fmt.Errorf("%w: list [search] [page]", ErrUsage)
	}
	return p, nil
}

func (a *App) print(v any) error {
	var (
		data []byte
		err  error
	)
	if raw, ok := v.(json.RawMessage); ok {
		var decoded any
		if len(raw) > 0 {
			if err = json.Unmarshal(raw, &decoded); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
		}
		v = decoded
	}
	if data, err = json.MarshalIndent(v, "", "  "); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}

// Registry exposes the metrics collected during the run.
func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

// Close detaches subscribers and releases the NATS and storage connections.
// Calls after the first return the first result.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		for i := len(a.closers) - 1; i >= 0; i-- {
			a.closers[i]()
		}
		a.closers = nil
		if a.natsClient != nil {
			a.natsClient.Close()
			a.natsClient = nil
		}
		a.closeErr = a.storages.Close()
	})
	return a.closeErr
}
