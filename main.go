package main

// GET    /menu                                   - menu, ordered by category
// GET    /menu/categories                        - distinct categories
// POST   /menu                                   - add a menu item
// POST   /order/sessions                         - open an ordering session
// GET    /order/sessions/{id}                    - cart lines, total, count
// POST   /order/sessions/{id}/items/{itemID}     - add one unit
// DELETE /order/sessions/{id}/items/{itemID}     - remove one unit
// DELETE /order/sessions/{id}                    - discard the session
// POST   /contact                                - contact form
// POST   /auth/signup, /auth/login, /auth/logout - accounts
// GET    /auth/google, /auth/callback            - Google sign-in (PKCE)
// GET    /auth/profile                           - signed-in user's profile

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"restaurant-ordering/auth"
	"restaurant-ordering/config"
	"restaurant-ordering/handler"
	"restaurant-ordering/logger"
	"restaurant-ordering/service"
	"restaurant-ordering/store"
)

//go:embed migrations.sql
var migrationSQL string

func main() {
	cfg := config.Load()
	log, err := logger.New(logger.Options{Service: "restaurant", Env: cfg.AppEnv, Level: cfg.LogLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("exiting", zap.Error(err))
		os.Exit(1)
	}
	log.Info("bye")
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Store ---
	st, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "connect database")
	}
	defer st.Close()

	if cfg.RunMigrations {
		if err := st.Migrate(ctx, migrationSQL); err != nil {
			return errors.Wrap(err, "run migrations")
		}
		log.Info("database migrations executed")
	}

	// --- Auth ---
	state := auth.NewState()
	unsubscribe := state.Subscribe(func(ev auth.Event) {
		log.Info("auth state changed",
			zap.Stringer("event", ev.Type),
			zap.String("user_id", ev.User.ID),
		)
	})
	defer unsubscribe()

	opts := service.Options{
		State:      state,
		SiteURL:    cfg.SiteURL,
		SessionTTL: cfg.OrderSessionTTL,
		Logger:     log,
	}
	if cfg.AuthConfigured() {
		opts.Provider = auth.NewGoTrue(cfg.SupabaseURL, cfg.SupabaseAnonKey, nil)
	} else {
		log.Warn("identity service not configured; account endpoints disabled",
			zap.Bool("has_url", cfg.SupabaseURL != ""),
			zap.Bool("has_anon_key", cfg.SupabaseAnonKey != ""),
		)
	}

	// --- Service ---
	svc := service.NewService(st, opts)
	var serviceInterface service.ServiceInterface = svc

	// --- Handlers ---
	h := handler.NewHandler(serviceInterface, log)
	h.SecureCookies = cfg.IsProd()

	// --- Router ---
	r := mux.NewRouter()
	h.RegisterRoutes(r)

	// --- Server ---
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http serve")
		}
		return nil
	})
	g.Go(func() error {
		sweep(gctx, svc, state, cfg.SweepInterval, log)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// sweep drops idle order sessions and expired auth tokens until ctx is done.
func sweep(ctx context.Context, svc *service.Service, state *auth.State, every time.Duration, log *zap.Logger) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := svc.Orders().Sweep(now); n > 0 {
				log.Debug("expired order sessions", zap.Int("count", n), zap.Int("open", svc.Orders().Len()))
			}
			if n := state.Evict(now); n > 0 {
				log.Debug("evicted auth tokens", zap.Int("count", n), zap.Int("cached", state.Len()))
			}
		}
	}
}
