package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"luxorient-backend/internal/admins"
	"luxorient-backend/internal/auth"
	"luxorient-backend/internal/cache"
	"luxorient-backend/internal/config"
	"luxorient-backend/internal/crud"
	"luxorient-backend/internal/db"
	"luxorient-backend/internal/destinations"
	"luxorient-backend/internal/hotels"
	"luxorient-backend/internal/inquiries"
	"luxorient-backend/internal/middleware"
	"luxorient-backend/internal/posts"
	"luxorient-backend/internal/settings"
	"luxorient-backend/internal/stats"
	"luxorient-backend/internal/tours"
	"luxorient-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "luxorient-backend",
		}
	} else {
		logger.Warn("JWT_SECRET unset, CMS endpoints disabled")
	}

	val := validation.New()
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second

	toursService := tours.NewService(crud.NewMongo[tours.Tour](cols.Tours), cacheStore, cfg.Timezone)
	toursHandler := tours.NewHandler(toursService, val, logger, cacheStore, cacheTTL)

	hotelsService := hotels.NewService(crud.NewMongo[hotels.Hotel](cols.Hotels), cacheStore, cfg.Timezone)
	hotelsHandler := hotels.NewHandler(hotelsService, val, logger, cacheStore, cacheTTL)

	destinationsService := destinations.NewService(crud.NewMongo[destinations.Destination](cols.Destinations), cacheStore, cfg.Timezone)
	destinationsHandler := destinations.NewHandler(destinationsService, val, logger, cacheStore, cacheTTL)

	postsService := posts.NewService(crud.NewMongo[posts.Post](cols.Posts), cacheStore, cfg.Timezone)
	postsHandler := posts.NewHandler(postsService, val, logger, cacheStore, cacheTTL)

	settingsService := settings.NewService(crud.NewMongo[settings.SiteSettings](cols.Settings), cacheStore, cfg.Timezone)
	settingsHandler := settings.NewHandler(settingsService, val, logger, cacheStore, cacheTTL)

	inquiriesService := inquiries.NewService(crud.NewMongo[inquiries.Inquiry](cols.Inquiries), cacheStore, cfg.Timezone)
	inquiriesHandler := inquiries.NewHandler(inquiriesService, val, logger)

	adminsService := admins.NewService(crud.NewMongo[admins.AdminUser](cols.AdminUsers), cfg.AdminSetupKey, cfg.Timezone)
	adminsHandler := admins.NewHandler(adminsService, jwtManager, val, logger)

	statsHandler := stats.NewHandler(cols, cacheStore, logger, cacheTTL)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Setup-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(corsHandler.Handler)
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	inquiryLimiter := middleware.NewRateLimiter(cfg.RateLimitInquiries, time.Duration(cfg.RateLimitWindowSec)*time.Second)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Get("/tours", toursHandler.PublicList)
		api.Get("/tours/{slug}", toursHandler.PublicGetBySlug)
		api.Get("/hotels", hotelsHandler.PublicList)
		api.Get("/hotels/{slug}", hotelsHandler.PublicGetBySlug)
		api.Get("/destinations", destinationsHandler.PublicList)
		api.Get("/destinations/{slug}", destinationsHandler.PublicGetBySlug)
		api.Get("/posts", postsHandler.PublicList)
		api.Get("/posts/{slug}", postsHandler.PublicGetBySlug)
		api.Get("/settings", settingsHandler.PublicGet)
		api.With(inquiryLimiter.Middleware).Post("/inquiries", inquiriesHandler.Create)

		api.Route("/cms", func(cms chi.Router) {
			cms.Post("/auth/login", adminsHandler.Login)
			cms.Post("/auth/refresh", adminsHandler.Refresh)
			cms.Post("/auth/register", adminsHandler.Register)

			// chi requires middleware before routes, so protected endpoints
			// live in their own sub-router.
			cms.Group(func(protected chi.Router) {
				protected.Use(middleware.AdminAuth(jwtManager))

				protected.Get("/auth/me", adminsHandler.Me)
				protected.Patch("/auth/password", adminsHandler.ChangePassword)

				protected.Get("/stats", statsHandler.Overview)

				protected.Get("/tours", toursHandler.AdminList)
				protected.Post("/tours", toursHandler.AdminCreate)
				protected.Put("/tours/{id}", toursHandler.AdminUpdate)
				protected.Delete("/tours/{id}", toursHandler.AdminDelete)

				protected.Get("/hotels", hotelsHandler.AdminList)
				protected.Post("/hotels", hotelsHandler.AdminCreate)
				protected.Put("/hotels/{id}", hotelsHandler.AdminUpdate)
				protected.Delete("/hotels/{id}", hotelsHandler.AdminDelete)

				protected.Get("/destinations", destinationsHandler.AdminList)
				protected.Post("/destinations", destinationsHandler.AdminCreate)
				protected.Put("/destinations/{id}", destinationsHandler.AdminUpdate)
				protected.Delete("/destinations/{id}", destinationsHandler.AdminDelete)

				protected.Get("/posts", postsHandler.AdminList)
				protected.Post("/posts", postsHandler.AdminCreate)
				protected.Put("/posts/{id}", postsHandler.AdminUpdate)
				protected.Delete("/posts/{id}", postsHandler.AdminDelete)

				protected.Get("/settings", settingsHandler.AdminGet)
				protected.Put("/settings", settingsHandler.AdminSave)

				protected.Get("/inquiries", inquiriesHandler.AdminList)
				protected.Get("/inquiries/{id}", inquiriesHandler.AdminGetByID)
				protected.Patch("/inquiries/{id}/status", inquiriesHandler.AdminUpdateStatus)
				protected.Delete("/inquiries/{id}", inquiriesHandler.AdminDelete)
			})
		})
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
