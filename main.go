package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	auth "Nodal/internal/auth"
	batch "Nodal/internal/calc/batch"
	fluid "Nodal/internal/calc/fluid"
	friction "Nodal/internal/calc/friction"
	importer "Nodal/internal/calc/importer"
	ipr "Nodal/internal/calc/ipr"
	nodal "Nodal/internal/calc/nodal"
	report "Nodal/internal/calc/report"
	"Nodal/internal/config"
	"Nodal/internal/logging"
	"Nodal/internal/metrics"
	"Nodal/internal/middleware"
	"Nodal/internal/respond"
)

var wg sync.WaitGroup

// HandleList registers every route on r and returns the per-host limiter so
// the caller can run its cleanup loop.
func HandleList(r *mux.Router, cfg config.Config, logger *zap.Logger) *auth.IPRateLimiter {
	r.Use(middleware.RequestID, middleware.Observe(logger))

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	authEnv := &auth.Authenv{
		JWTkey:       []byte(cfg.TokenKey),
		Login:        cfg.AdminLogin,
		PasswordHash: cfg.AdminPasswordHash,
		TTL:          cfg.SessionTTL,
		SecureCookie: cfg.TLS(),
		Log:          logger.Named("auth"),
	}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)
	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")

	tools := api.PathPrefix("/tools").Subrouter()
	tools.Use(authEnv.AuthMiddleware)

	iprH := &ipr.Handler{}
	tools.HandleFunc("/ipr/productivity", iprH.Productivity).Methods("POST")
	tools.HandleFunc("/ipr/productivity/darcy", iprH.DarcyProductivity).Methods("POST")
	tools.HandleFunc("/ipr/capacity", iprH.Capacity).Methods("POST")
	tools.HandleFunc("/ipr/rate", iprH.Rate).Methods("POST")
	tools.HandleFunc("/ipr/pressure", iprH.Pressure).Methods("POST")
	tools.HandleFunc("/ipr/curve", iprH.Curve).Methods("POST")

	fluidH := &fluid.Handler{}
	frictionH := &friction.Handler{}
	nodalH := &nodal.Handler{}
	importH := &importer.Handler{MaxUploadBytes: cfg.MaxUploadBytes()}
	batchH := &batch.Handler{}
	reportH := &report.Handler{}

	tools.HandleFunc("/fluid/calc", fluidH.Calc).Methods("POST")
	tools.HandleFunc("/friction/calc", frictionH.Calc).Methods("POST")
	tools.HandleFunc("/nodal/calc", nodalH.Calc).Methods("POST")
	tools.HandleFunc("/import/ipr", importH.IPR).Methods("POST")
	tools.HandleFunc("/import/nodal", importH.Nodal).Methods("POST")
	tools.HandleFunc("/batch/ipr", batchH.IPR).Methods("POST")
	tools.HandleFunc("/report/pdf", reportH.Generate).Methods("POST")
	return limiter
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	r := mux.NewRouter()
	limiter := HandleList(r, cfg, logger)

	wg.Add(1)
	go func() {
		defer wg.Done()
		limiter.Run(ctx, auth.LimiterSweep, auth.LimiterIdle)
	}()

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: middleware.CORS(r),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", zap.String("addr", cfg.Addr), zap.Bool("tls", cfg.TLS()))
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	wg.Wait()
	logger.Info("server stopped cleanly")
}
