package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myshop-be/internal/admin"
	"myshop-be/internal/auth"
	"myshop-be/internal/cart"
	"myshop-be/internal/catalog"
	"myshop-be/internal/checkout"
	"myshop-be/internal/config"
	"myshop-be/internal/db"
	"myshop-be/internal/httpapi"
	"myshop-be/internal/logger"
	"myshop-be/internal/metrics"
	"myshop-be/internal/middleware"
	"myshop-be/internal/notification"
	"myshop-be/internal/order"
	"myshop-be/internal/payment"
	"myshop-be/internal/product"
	"myshop-be/internal/review"
	"myshop-be/internal/session"
	"myshop-be/internal/user"

	"go.uber.org/zap"
)

const (
	tokenTTL          = 24 * time.Hour
	sessionMaxAge     = 30 * 24 * time.Hour
	limiterSweepEvery = time.Minute
	shutdownTimeout   = 10 * time.Second
)

// Overridable in tests.
var (
	initDBFunc      = db.InitDB
	startServerFunc = listenAndServe
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	handler, shutdown, err := newServer(cfg, database)
	if err != nil {
		return err
	}
	defer shutdown()

	logger.L().Info("http server starting", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
	return startServerFunc(":"+cfg.AppPort, handler)
}

// newServer wires every dependency. The returned func stops background
// work and waits for in-flight notifications.
func newServer(cfg *config.Config, database *sql.DB) (http.Handler, func(), error) {
	secure := cfg.AppEnv == "production"

	issuer := auth.NewIssuer(cfg.JWTSecret, tokenTTL)
	store, err := session.NewStore(cfg.SessionSecret, sessionMaxAge, secure)
	if err != nil {
		return nil, nil, err
	}

	m := metrics.NewServerMetrics(nil)

	transport, err := notificationTransport(cfg)
	if err != nil {
		return nil, nil, err
	}
	dispatcher := notification.NewDispatcher(transport, cfg.NotifyTimeout, m)

	productRepo := product.NewRepository(database)
	userRepo := user.NewRepository(database)
	orderRepo := order.NewRepository(database)
	reviewRepo := review.NewRepository(database)

	productSvc := product.NewService(productRepo)
	userSvc := user.NewService(userRepo, issuer)
	orderSvc := order.NewService(orderRepo)

	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeAPIBase, cfg.GatewayTimeout)
	checkoutSvc := checkout.NewService(userSvc, orderRepo, gateway, dispatcher, m, checkout.URLs{
		Success: cfg.AppBaseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		Cancel:  cfg.AppBaseURL + "/checkout/cancel",
	})

	api := httpapi.NewServer(httpapi.Deps{
		Users:         userSvc,
		Products:      productSvc,
		Catalog:       catalog.NewService(productRepo, reviewRepo, orderRepo),
		Reviews:       review.NewService(reviewRepo),
		Carts:         cart.NewService(productRepo),
		Orders:        orderSvc,
		Checkout:      checkoutSvc,
		Admin:         admin.NewService(admin.RoleAuthorizer{}, orderRepo, productSvc),
		Issuer:        issuer,
		Metrics:       m,
		SecureCookies: secure,
		Ping:          database.PingContext,
	})

	limiter := middleware.NewRateLimiter(cfg.InternalKey)
	ctx, cancel := context.WithCancel(context.Background())
	go limiter.Run(ctx, limiterSweepEvery)

	shutdown := func() {
		cancel()
		dispatcher.Wait()
		if c, ok := transport.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				logger.L().Warn("notification transport close failed", zap.Error(err))
			}
		}
	}

	return setupRouter(api.Engine(), cfg.CORSOrigin, issuer, store, limiter), shutdown, nil
}

// setupRouter applies the net/http middleware chain around the API.
func setupRouter(api http.Handler, corsOrigin string, issuer *auth.Issuer, store *session.Store, limiter *middleware.RateLimiter) http.Handler {
	var h http.Handler = api
	h = limiter.Middleware(h)
	h = session.Middleware(store)(h)
	h = middleware.AuthMiddleware(issuer)(h)
	h = middleware.CORS(corsOrigin)(h)
	h = middleware.LoggingMiddleware(h)
	h = logger.RequestIDMiddleware(h)
	return h
}

// notificationTransport prefers Kafka, then SMTP, then the log sink.
func notificationTransport(cfg *config.Config) (notification.Transport, error) {
	switch {
	case cfg.KafkaBrokers != "":
		t, err := notification.NewKafkaTransport(cfg.KafkaBrokers, cfg.KafkaNotifyTopic)
		if err != nil {
			return nil, err
		}
		return t, nil
	case cfg.SMTPHost != "":
		t, err := notification.NewSMTPTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPSender)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		logger.L().Warn("no notification transport configured, confirmations go to the log")
		return notification.LogTransport{}, nil
	}
}

func listenAndServe(addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.L().Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
