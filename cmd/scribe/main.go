package main

import (
	"context"
	"net/http"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/avolkov/scribe/internal/auth/http"
	authservice "github.com/avolkov/scribe/internal/auth/service"
	"github.com/avolkov/scribe/internal/common/clock"
	"github.com/avolkov/scribe/internal/common/config"
	"github.com/avolkov/scribe/internal/common/crypto"
	"github.com/avolkov/scribe/internal/common/db"
	commonhttp "github.com/avolkov/scribe/internal/common/http"
	"github.com/avolkov/scribe/internal/common/jwtverify"
	"github.com/avolkov/scribe/internal/common/logger"
	srv "github.com/avolkov/scribe/internal/common/server"
	"github.com/avolkov/scribe/internal/feed"
	posthttp "github.com/avolkov/scribe/internal/post/http"
	postrepo "github.com/avolkov/scribe/internal/post/repository"
	postservice "github.com/avolkov/scribe/internal/post/service"
	userrepo "github.com/avolkov/scribe/internal/user/repository"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "scribe", os.Getenv("LOG_LEVEL"))
	if err != nil {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	hasher := crypto.NewBcryptHasher()
	idGenerator := crypto.NewUUIDGenerator()

	userRepo := userrepo.NewPgRepository(pool)
	postRepo := postrepo.NewPgRepository(pool)

	issuer := authservice.NewJWTIssuer(cfg.JWTSecret, idGenerator, cfg.AccessTokenTTL, clock.NewRealClock())
	authSvc := authservice.NewAuthService(userRepo, hasher, issuer, idGenerator, log)

	hub := feed.NewHub(log)
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		hub.Run(ctx)
	}()

	postSvc := postservice.NewPostService(postRepo, idGenerator, hub, log)

	restMux := http.NewServeMux()
	restMux.HandleFunc("/health", commonhttp.HealthHandler(log))
	restMux.Handle("/metrics", promhttp.Handler())

	restMux.Handle("/api/auth/", authhttp.NewHandler(authSvc, cfg.RequestTimeout, log))
	postHandler := posthttp.NewHandler(postSvc, cfg.JWTSecret, cfg.RequestTimeout, log)
	restMux.Handle("/api/posts", postHandler)
	restMux.Handle("/api/posts/", postHandler)

	rateLimiter := commonhttp.NewTieredRateLimiter()
	wrappedRestMux := commonhttp.BuildBaseHandler(log, rateLimiter.Middleware(restMux))

	// the websocket upgrade needs the raw ResponseWriter, so the feed
	// route bypasses the metrics and body-limit wrappers
	jwtMw := jwtverify.Middleware(cfg.JWTSecret, log)
	mainMux := http.NewServeMux()
	mainMux.Handle("/api/feed", jwtMw(feed.NewHandler(hub, log)))
	mainMux.Handle("/", wrappedRestMux)

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), mainMux)

	hooks := []srv.ShutdownHook{
		func(context.Context) error {
			cancel()
			wg.Wait()
			return nil
		},
	}
	srv.StartWithGracefulShutdownAndHooks(server, log, "scribe", hooks)
}
