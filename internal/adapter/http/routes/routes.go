package routes

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "evergreen_estimator/docs" // swag-generated swagger spec
	"evergreen_estimator/internal/adapter/http/handlers"
	"evergreen_estimator/internal/adapter/persistence/autosave"
	"evergreen_estimator/internal/adapter/persistence/repository"
	"evergreen_estimator/internal/domain/mutate"
	"evergreen_estimator/internal/infrastructure/database"
	"evergreen_estimator/internal/infrastructure/voice"
	"evergreen_estimator/internal/usecase"
	"evergreen_estimator/internal/usecase/interfaces"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var (
	router = gin.Default()

	// Set when the auto-save decorator is enabled so shutdown can flush
	// writes still waiting for their debounce window.
	saver *autosave.Saver
)

const (
	defaultPort     = 8080
	shutdownTimeout = 10 * time.Second
)

// Run wires the full application and starts the server. On SIGINT or
// SIGTERM it drains in-flight requests and flushes any pending debounced
// saves before returning.
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(serverPort()),
		Handler: router,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start the application")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	flushPending(shutdownCtx)
}

func serverPort() int {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			return p
		}
	}
	return defaultPort
}

// flushPending writes every snapshot the auto-save decorator is still
// holding, so a pending edit is not lost when the process exits.
func flushPending(ctx context.Context) {
	if saver == nil {
		return
	}
	if err := saver.Flush(ctx); err != nil {
		log.Error().Err(err).Msg("flushing pending saves on shutdown")
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	var repo interfaces.IEstimateRepository = repository.NewEstimateDynamoRepository(ddb)
	if delay := autosaveDelay(); delay > 0 {
		saver = autosave.New(repo, delay)
		repo = saver
		log.Info().Dur("delay", delay).Msg("debounced auto-save enabled")
	}

	policy, err := mutate.ParseShrinkPolicy(os.Getenv("ALLOCATION_SHRINK_POLICY"))
	if err != nil {
		log.Warn().Err(err).Msg("falling back to permissive shrink policy")
	}

	estimateUseCase := usecase.NewEstimateUseCase(repo, policy)
	estimateHandler := handlers.NewEstimateHandler(estimateUseCase)

	voiceUseCase := usecase.NewVoiceUseCase(repo, buildTranscriber(), buildParser())
	voiceHandler := handlers.NewVoiceHandler(voiceUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addEstimateRoutes(v1, estimateHandler, voiceHandler)
}

// buildTranscriber picks the speech-to-text provider. The OpenAI gateway is
// the default; VOICE_TRANSCRIBER=gcp switches to Cloud Speech. A missing
// credential leaves the voice endpoint returning a configuration error
// instead of preventing startup.
func buildTranscriber() interfaces.ITranscriber {
	if os.Getenv("VOICE_TRANSCRIBER") == "gcp" {
		t, err := voice.NewGCPTranscriber(context.Background())
		if err != nil {
			log.Warn().Err(err).Msg("gcp transcriber not configured")
			return nil
		}
		return t
	}

	g, err := voice.NewOpenAIGateway()
	if err != nil {
		log.Warn().Err(err).Msg("openai voice gateway not configured")
		return nil
	}
	return g
}

func buildParser() interfaces.IVoiceParser {
	g, err := voice.NewOpenAIGateway()
	if err != nil {
		return nil
	}
	return g
}

func autosaveDelay() time.Duration {
	v := os.Getenv("AUTOSAVE_DEBOUNCE_MS")
	if v == "" {
		return time.Second
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
}

func corsOrigins() []string {
	if v := os.Getenv("CORS_ALLOW_ORIGIN"); v != "" {
		return []string{v}
	}
	return []string{"http://localhost:5173"}
}
