package main

import (
	auth "PouchCell/internal/auth"
	cell "PouchCell/internal/calc/cell"
	report "PouchCell/internal/calc/report"
	workbook "PouchCell/internal/calc/workbook"
	config "PouchCell/internal/config"
	logging "PouchCell/internal/logging"
	profile "PouchCell/internal/profile"
	repo "PouchCell/internal/repo"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

func CORS(router *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		router.ServeHTTP(w, r)
	})
}

// newHandler logs every request, including preflights and unmatched routes.
func newHandler(router *mux.Router, logger *zap.Logger) http.Handler {
	return logging.Requests(logger)(CORS(router))
}

type deps struct {
	cfg       config.Config
	logger    *zap.Logger
	constants cell.MaterialConstants
	users     repo.Users // nil when auth is disabled
}

func HandleList(router *mux.Router, d deps) {
	limiter := auth.NewIPRateLimiter(rate.Limit(d.cfg.RateLimitRPS), d.cfg.RateLimitBurst)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	var tools *mux.Router
	if d.users != nil {
		authSvc := &auth.Service{Key: []byte(d.cfg.TokenKey), Users: d.users, Log: d.logger, Secure: d.cfg.TLS()}
		api.HandleFunc("/login", authSvc.Login).Methods("POST")
		api.HandleFunc("/register", authSvc.Register).Methods("POST")
		api.HandleFunc("/logout", authSvc.Logout).Methods("POST")

		secureApi := api.PathPrefix("/user").Subrouter()
		secureApi.Use(authSvc.Middleware)
		profileH := &profile.ProfileHandler{Users: d.users, Log: d.logger}
		secureApi.HandleFunc("/profile", profileH.GetProfile).Methods("GET")
		tools = secureApi.PathPrefix("/tools").Subrouter()
	} else {
		tools = api.PathPrefix("/tools").Subrouter()
	}

	cellH := &cell.Handler{Constants: d.constants}
	reportH := &report.Handler{Constants: d.constants}
	workbookH := &workbook.Handler{Constants: d.constants}

	tools.HandleFunc("/cell/defaults", cellH.Defaults).Methods("GET")
	tools.HandleFunc("/cell/calc", cellH.Calc).Methods("POST")
	tools.HandleFunc("/cell/breakdown", cellH.Breakdown).Methods("POST")
	tools.HandleFunc("/cell/report/pdf", reportH.Generate).Methods("POST")
	tools.HandleFunc("/cell/workbook/import", workbookH.Import).Methods("POST")
	tools.HandleFunc("/cell/workbook/export", workbookH.Export).Methods("POST")
}

func loadConstants(path string) (cell.MaterialConstants, error) {
	if path == "" {
		return cell.DefaultConstants(), nil
	}
	return cell.LoadConstants(path)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.Debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	constants, err := loadConstants(cfg.MaterialsFile)
	if err != nil {
		logger.Fatal("material constants", zap.Error(err))
	}

	d := deps{cfg: cfg, logger: logger, constants: constants}
	if cfg.AuthEnabled() {
		db, err := repo.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("database", zap.Error(err))
		}
		defer db.Close()
		users := repo.NewPostgresUsers(db)
		if err := users.EnsureSchema(ctx); err != nil {
			logger.Fatal("database schema", zap.Error(err))
		}
		d.users = users
	} else {
		logger.Warn("TOKEN_KEY not set, tool routes are public")
	}

	router := mux.NewRouter()
	HandleList(router, d)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(router, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	listen := server.ListenAndServe
	if cfg.TLS() {
		listen = func() error { return server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey) }
	}

	logger.Info("starting server", zap.String("addr", cfg.Addr), zap.Bool("tls", cfg.TLS()), zap.Bool("auth", cfg.AuthEnabled()))
	if err := serve(ctx, server, listen, logger); err != nil {
		logger.Error("server error", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}

// serve runs listen until ctx is done, then shuts the server down gracefully.
func serve(ctx context.Context, server *http.Server, listen func() error, logger *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := listen(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received, closing active connections")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
