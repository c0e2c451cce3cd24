package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/windoze95/lookforrecipes/internal/bot"
	"github.com/windoze95/lookforrecipes/internal/config"
	"github.com/windoze95/lookforrecipes/internal/logger"
	"github.com/windoze95/lookforrecipes/internal/router"
	"github.com/windoze95/lookforrecipes/internal/service"
	"github.com/windoze95/lookforrecipes/internal/source"
	"go.uber.org/zap"
)

// init is called before the main function.
func init() {
	// Initialize structured logger (dev mode unless APP_ENV=production)
	isDev := os.Getenv("APP_ENV") != config.EnvProduction
	logger.Init(isDev)

	// Configure the runtime
	ConfigureRuntime()
}

// Entry point for the bot and its API.
func main() {
	defer logger.Sync()
	log := logger.Get()

	// Load the config
	var cfg *config.Config
	if c, err := config.LoadConfig(); err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	} else {
		cfg = c
	}

	// Check that all ENV variables are set
	if err := cfg.CheckConfigEnvFields(); err != nil {
		log.Fatal("missing required config fields", zap.Error(err))
	}

	// Load chat messages, falling back to the built-in copy
	messages, err := config.LoadMessages(cfg.EnvVars.MessagesPath)
	if err != nil {
		log.Fatal("failed to load messages", zap.Error(err))
	}
	cfg.Messages = messages

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Content source
	log.Info("initializing reddit querier", zap.String("subreddit", cfg.EnvVars.RedditSubreddit))
	reddit := source.NewRedditProvider(source.RedditConfig{
		UserAgent:         cfg.EnvVars.RedditUserAgent,
		ClientID:          cfg.EnvVars.RedditClientID,
		ClientSecret:      cfg.EnvVars.RedditClientSecret,
		Username:          cfg.EnvVars.RedditUsername,
		Password:          cfg.EnvVars.RedditPassword,
		Subreddit:         cfg.EnvVars.RedditSubreddit,
		RequestsPerMinute: cfg.EnvVars.RedditRequestsPerMinute,
	}, log.Named("reddit"))

	searchService := service.NewSearchService(cfg, reddit, log.Named("search"))
	deliveryService := service.NewDeliveryService(log.Named("delivery"))

	// Chat transport
	log.Info("initializing bot")
	api, err := tgbotapi.NewBotAPI(cfg.EnvVars.TelegramToken)
	if err != nil {
		log.Fatal("failed to connect to telegram", zap.Error(err))
	}
	b := bot.NewBot(cfg, api, searchService, deliveryService, log.Named("bot"))

	pollDone := make(chan struct{})
	if cfg.IsProduction() {
		close(pollDone)
		if err := b.RegisterWebhook(cfg.WebhookURL()); err != nil {
			log.Fatal("failed to register webhook", zap.Error(err))
		}
	} else {
		if err := b.RemoveWebhook(); err != nil {
			log.Fatal("failed to remove webhook", zap.Error(err))
		}
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		updates := api.GetUpdatesChan(u)
		go func() {
			defer close(pollDone)
			b.Poll(ctx, updates)
		}()
		log.Info("polling for updates", zap.String("bot", api.Self.UserName))
	}

	// HTTP server
	gin.SetMode(gin.ReleaseMode)
	r := router.SetupRouter(cfg, searchService, b, log.Named("http"))
	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.EnvVars.Port,
		Handler: r,
	}

	go func() {
		log.Info("starting server", zap.String("port", cfg.EnvVars.Port), zap.String("url", cfg.EnvVars.URL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	if !cfg.IsProduction() {
		api.StopReceivingUpdates()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	<-pollDone

	// Webhook updates acknowledged before shutdown are still being delivered
	b.Wait()
	log.Info("shutdown complete")
}

// ConfigureRuntime sets the number of operating system threads.
func ConfigureRuntime() {
	nuCPU := runtime.NumCPU()
	runtime.GOMAXPROCS(nuCPU)
	logger.Get().Info("runtime configured", zap.Int("cpus", nuCPU))
}
