package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookstore-be/internal/address"
	"bookstore-be/internal/auth"
	"bookstore-be/internal/cart"
	"bookstore-be/internal/config"
	"bookstore-be/internal/db"
	"bookstore-be/internal/i18n"
	"bookstore-be/internal/logger"
	"bookstore-be/internal/mailer"
	"bookstore-be/internal/metrics"
	"bookstore-be/internal/middleware"
	"bookstore-be/internal/order"
	"bookstore-be/internal/payment"
	"bookstore-be/internal/payment/webhook"
	"bookstore-be/internal/product"
	"bookstore-be/internal/rest"
	"bookstore-be/internal/transport"
	"bookstore-be/internal/user"
	"bookstore-be/internal/vendorpanel"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           newServer(ctx, cfg, database),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.L().Info("server running", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
	if err := startServerFunc(srv); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// newServer wires repositories, services and routes into one handler.
func newServer(ctx context.Context, cfg *config.Config, database *sql.DB) http.Handler {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	notifier := mailer.NewNotifier(
		mailer.NewSender(cfg.SendGridAPIKey, cfg.DefaultFromEmail),
		cfg.FrontendURL,
		m,
	)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	userSvc := user.NewService(user.NewRepository(database), tokens, notifier)
	addressSvc := address.NewService(address.NewRepository(database))

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	orderSvc := order.NewService(order.NewRepository(database), cartRepo, notifier, m)

	paymentSvc := payment.NewService(payment.Deps{
		Repo:        payment.NewRepository(database),
		Gateway:     payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret),
		Orders:      orderSvc,
		Carts:       cartSvc,
		Notifier:    notifier,
		Metrics:     m,
		FrontendURL: cfg.FrontendURL,
	})

	vendorSvc := vendorpanel.NewService(vendorpanel.NewRepository(database), productRepo)

	api := &rest.Handler{
		Users:     userSvc,
		Addresses: addressSvc,
		Products:  productSvc,
		Carts:     cartSvc,
		Orders:    orderSvc,
		Payments:  paymentSvc,
		Vendor:    vendorSvc,
		Sessions:  transport.NewGuestSessions(cfg.JWTSecret),
		Webhook:   webhook.NewHandler(paymentSvc),
	}

	router := setupRouter(api, m)

	limiter := middleware.NewRateLimiter(ctx)

	var h http.Handler = router
	h = limiter.Middleware(h)
	h = middleware.LoggingMiddleware(h)
	h = middleware.AuthMiddleware(tokens)(h)
	h = middleware.CORS(cfg.CORSOrigin)(h)
	h = i18n.Middleware(h)
	h = logger.RequestIDMiddleware(h)
	return h
}

func setupRouter(api *rest.Handler, m *metrics.Metrics) *mux.Router {
	r := mux.NewRouter()
	r.Use(m.Middleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	api.Register(r)
	return r
}
