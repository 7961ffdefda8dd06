package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/RajanRajbhar12/Whisperconnect/internal/db"
	"github.com/RajanRajbhar12/Whisperconnect/internal/handlers"
	"github.com/RajanRajbhar12/Whisperconnect/internal/matchmaking"
	"github.com/RajanRajbhar12/Whisperconnect/internal/media"
	"github.com/RajanRajbhar12/Whisperconnect/internal/models"
	"github.com/RajanRajbhar12/Whisperconnect/internal/observability"
	"github.com/RajanRajbhar12/Whisperconnect/internal/rabbitmq"
	"github.com/RajanRajbhar12/Whisperconnect/internal/repositories"
	"github.com/RajanRajbhar12/Whisperconnect/internal/telemetry"
	"github.com/RajanRajbhar12/Whisperconnect/internal/ws"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	shutdownTracing, err := telemetry.InitTracing(ctx, "whisperconnect", getEnv("OTEL_COLLECTOR_ADDR", ""))
	if err != nil {
		log.Fatalf("failed to init tracing: %v", err)
	}
	defer func() { _ = shutdownTracing(ctx) }()

	amqpURL := getEnv("AMQP_URL", "")
	exchange := getEnv("AMQP_EXCHANGE", "whisperconnect.events")
	publisher := rabbitmq.NewPublisher(amqpURL, exchange)
	defer publisher.Close()
	log.Printf("event publisher mode=%s", rabbitmq.PublisherMode(publisher))
	emitter := telemetry.NewAuditEmitter(publisher, "audit_log.whisperconnect", "whisperconnect", getEnv("ENVIRONMENT", "dev"))

	// Lifecycle events (ws connects, matches, session ends) go through the
	// observability publisher; with AMQP down they are simply skipped.
	if eventsPublisher, err := observability.NewAMQPPublisher(amqpURL, exchange); err == nil {
		observability.SetPublisher(eventsPublisher)
		defer eventsPublisher.Close()
	}

	hub := ws.NewHub()
	queue := matchmaking.NewMoodQueue()
	store := matchmaking.NewMatchStore()
	matchmaker := matchmaking.NewMatchmaker(queue, store, hub, matchmaking.DefaultSettleDelay)

	var archive repositories.SessionArchive
	if dsn := getEnv("DB_DSN", ""); dsn != "" {
		database, err := db.Connect(dsn)
		if err != nil {
			log.Fatalf("failed to connect to db: %v", err)
		}
		repo := repositories.NewSessionArchiveRepo(database)
		matchmaker.SetArchiver(repo)
		archive = repo
	} else {
		log.Printf("DB_DSN not set, session archive disabled")
	}

	tokenBuilder := media.NewTokenBuilder(getEnv("MEDIA_APP_ID", ""), getEnv("MEDIA_APP_SECRET", ""), media.DefaultTokenTTL)
	if !tokenBuilder.Configured() {
		log.Printf("media transport credentials not set, /media-token will return errors")
	}

	wsHandler := ws.NewSessionWebSocketHandler(hub, matchmaker)
	signalHandler := handlers.NewSignalHandler(matchmaker)
	tokenHandler := handlers.NewMediaTokenHandler(tokenBuilder)
	sessionsHandler := handlers.NewSessionsHandler(archive)

	// Seed the per-mood gauges so dashboards see the full mood set from the start.
	for _, mood := range models.Moods() {
		observability.SetQueueDepth(string(mood), 0)
	}

	router := gin.Default()

	// middlewares
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("whisperconnect"))
	router.Use(observability.HTTPMetricsMiddleware())

	router.GET("/ws", wsHandler.Handle)
	router.POST("/signal-relay", signalHandler.RelaySignal)
	router.POST("/media-token", tokenHandler.IssueToken)
	router.GET("/sessions/recent", sessionsHandler.ListRecent)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterDebugRoutes(router, emitter, getEnv("DEBUG_ROUTES", "") == "true")

	port := getEnv("PORT", "8080")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
