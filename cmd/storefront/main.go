package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/peakform/storefront/internal/booking"
	"github.com/peakform/storefront/internal/checkout"
	"github.com/peakform/storefront/internal/config"
	"github.com/peakform/storefront/internal/handler"
	"github.com/peakform/storefront/internal/middleware"
	"github.com/peakform/storefront/internal/notify"
	"github.com/peakform/storefront/internal/session"
	"github.com/peakform/storefront/internal/storage"
	"github.com/peakform/storefront/internal/store"
	"github.com/peakform/storefront/internal/syncq"
	"github.com/peakform/storefront/pkg/shopapi"
)

// main is the entrypoint for the PeakForm storefront client.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("backend", cfg.APIBaseURL).Msg("starting storefront")

	// 3. Open durable local state
	state, err := storage.Open(cfg.StateDBPath)
	if err != nil {
		log.Error().Err(err).Msg("state db open failed")
		fmt.Fprintf(os.Stderr, "state db open failed: %v\n", err)
		os.Exit(1)
	}

	// 4. Session manager + startup reconciliation
	sessions := session.NewManager(state)
	sessions.Restore()

	// 5. Backend client
	api := shopapi.NewClient(shopapi.Config{
		BaseURL: cfg.APIBaseURL,
		Tokens:  sessions,
		Debug:   cfg.Env == "development",
	})

	// 6. Stores
	notices := notify.NewCenter(32)
	catalog := store.NewCatalog(api)
	cart := store.NewCart(catalog)

	// 7. Cart mirror queue
	mirror := syncq.New(api, notices, sessions, cfg.Mirror.QueueSize, cfg.Mirror.CallTimeout)
	cart.SetMirror(mirror)

	// 8. Initial catalog fetch; the app still starts when the backend is down,
	// pages just render empty until a reload succeeds.
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := catalog.Load(loadCtx); err != nil {
		log.Warn().Err(err).Msg("initial catalog fetch failed")
		notices.Notify(notify.LevelError, "Could not reach the store, showing an empty catalog")
	}
	loadCancel()

	// 9. Services
	checkoutSvc := checkout.NewService(cart, catalog, sessions, api, notices, cfg.DeliveryFee)
	wizard := booking.NewWizard(api)

	// 10. Handlers
	catalogH := handler.NewCatalogHandler(catalog, cart, api, notices)
	cartH := handler.NewCartHandler(catalog, cart, checkoutSvc)
	checkoutH := handler.NewCheckoutHandler(cart, checkoutSvc, cfg.Razorpay.KeyID, cfg.Currency)
	authH := handler.NewAuthHandler(api, sessions, cart, notices)
	orderH := handler.NewOrderHandler(api)
	bookingH := handler.NewBookingHandler(wizard, api, notices)
	noticeH := handler.NewNoticeHandler(notices)

	// 11. Router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	sessionMw := middleware.NewSessionMiddleware(sessions)
	setupRoutes(router, catalogH, cartH, checkoutH, authH, orderH, bookingH, noticeH, sessionMw)

	// 12. Context for worker shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 13. Start the mirror worker
	go mirror.Start(ctx)

	// 14. Start the local app server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting app server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 15. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Storefront exited")
}

// setupRoutes registers all page and action routes.
func setupRoutes(
	router *gin.Engine,
	catalogH *handler.CatalogHandler,
	cartH *handler.CartHandler,
	checkoutH *handler.CheckoutHandler,
	authH *handler.AuthHandler,
	orderH *handler.OrderHandler,
	bookingH *handler.BookingHandler,
	noticeH *handler.NoticeHandler,
	sessionMw *middleware.SessionMiddleware,
) {
	// Identity-provider callback landing page
	router.GET("/auth/callback", authH.Auth0Callback)

	pages := router.Group("/pages")
	{
		pages.GET("/home", catalogH.Home)
		pages.GET("/catalog", catalogH.List)
		pages.GET("/product/:id", catalogH.Get)
		pages.GET("/cart", cartH.Page)
		pages.GET("/checkout", checkoutH.Page)
		pages.GET("/booking", bookingH.Page)
		pages.GET("/orders", sessionMw.Handle(), orderH.List)
		pages.GET("/bookings", sessionMw.Handle(), bookingH.List)
		pages.GET("/profile", sessionMw.Handle(), authH.Profile)
	}

	actions := router.Group("/actions")
	{
		actions.POST("/login", authH.Login)
		actions.POST("/register", authH.Register)
		actions.POST("/send-otp", authH.SendOTP)
		actions.POST("/auth0", authH.Auth0Exchange)
		actions.POST("/logout", authH.Logout)

		actions.POST("/catalog/reload", catalogH.Reload)

		actions.POST("/cart/add", cartH.Add)
		actions.POST("/cart/update", cartH.Update)

		actions.POST("/checkout/place", sessionMw.Handle(), checkoutH.PlaceOrder)
		actions.POST("/checkout/confirm", sessionMw.Handle(), checkoutH.ConfirmPayment)

		actions.POST("/review", sessionMw.Handle(), catalogH.SubmitReview)

		b := actions.Group("/booking")
		{
			b.POST("/branch", bookingH.SelectBranch)
			b.POST("/facility", bookingH.SelectFacility)
			b.POST("/date", bookingH.SelectDate)
			b.POST("/slot", bookingH.SelectSlot)
			b.POST("/contact", bookingH.Contact)
			b.POST("/next", bookingH.Next)
			b.POST("/back", bookingH.Back)
			b.POST("/submit", bookingH.Submit)
		}
	}

	router.GET("/notices", noticeH.Drain)
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
