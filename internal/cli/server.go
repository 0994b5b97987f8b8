package cli

import (
	"context"
	"database/sql"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bigbang-quiz-service/internal/app"
	"bigbang-quiz-service/internal/auth"
	"bigbang-quiz-service/internal/config"
	"bigbang-quiz-service/internal/domain"
	"bigbang-quiz-service/internal/infra/memory"
	"bigbang-quiz-service/internal/infra/postgres"
	redisinfra "bigbang-quiz-service/internal/infra/redis"
	"bigbang-quiz-service/internal/storage"
	transport "bigbang-quiz-service/internal/transport/http"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lmittmann/tint"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

// levelPool is the read path for game starts plus the invalidation hook used
// by authoring writes. Both cache implementations satisfy it.
type levelPool interface {
	QuestionsByLevel(ctx context.Context, level domain.Level) ([]domain.Question, error)
	Invalidate(ctx context.Context, level domain.Level)
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, logger); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	var db *bun.DB
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
		db = bun.NewDB(sqldb, pgdialect.New())
		defer db.Close()
	}

	// Repositories: postgres when configured, in-memory twins otherwise.
	var questionRepo app.QuestionRepository
	var rankingRepo app.RankingRepository
	var adminRepo app.AdminRepository
	var gameLoader app.QuestionLoader
	if db != nil {
		questionRepo = postgres.NewQuestionRepository(db)
		rankingRepo = postgres.NewRankingRepository(db)
		adminRepo = postgres.NewAdminRepository(db)
		gameLoader = postgres.NewQuestionLoader(pool)
	} else {
		logger.Warn("postgres not configured, using in-memory stores with demo questions")
		memRepo := memory.NewQuestionRepository()
		memRepo.Seed(demoQuestions())
		questionRepo = memRepo
		rankingRepo = memory.NewRankingRepository()
		adminRepo = memory.NewAdminRepository()
		gameLoader = memRepo
	}

	poolTTL := config.TTLDuration(cfg.Game.PoolTTL, 10*time.Minute)
	sessionTTL := config.TTLDuration(cfg.Game.SessionTTL, time.Hour)

	var questionPool levelPool
	var sessions app.SessionStore
	if redisClient != nil {
		questionPool = redisinfra.NewQuestionCache(redisClient, gameLoader, poolTTL)
		sessions = redisinfra.NewSessionStore(redisClient, sessionTTL)
	} else {
		questionPool = memory.NewQuestionCache(gameLoader, poolTTL)
		sessions = memory.NewSessionStore()
	}

	uploadsDir := cfg.Uploads.Dir
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	images, err := storage.NewImageStore(uploadsDir, logger)
	if err != nil {
		return err
	}

	secret := cfg.Auth.Secret
	if secret == "" {
		secret = "bigbang-dev-secret"
		logger.Warn("auth secret not configured, using development default")
	}
	tokens := auth.NewTokenService(secret, config.TTLDuration(cfg.Auth.TokenTTL, 12*time.Hour))

	ranking := app.NewRankingService(rankingRepo)
	selector := app.NewRoundSelector(questionPool, rand.New(rand.NewSource(time.Now().UnixNano())))
	games := app.NewGameService(selector, sessions, ranking)
	questions := app.NewQuestionService(questionRepo, images, logger)
	questions.UsePoolCache(questionPool)
	admins := app.NewAdminService(adminRepo, tokens)

	api := transport.NewAPI(games, questions, ranking, admins, tokens, images, logger)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      api.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("starting quiz service", "port", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("failed to start server", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// demoQuestions seeds the in-memory repository so the game is playable
// without a database.
func demoQuestions() []domain.Question {
	return []domain.Question{
		{Name: "Hidrogênio", Symbol: "H", Level: domain.LevelCurioso, Hints: []string{
			"É o elemento mais abundante do universo", "Possui apenas um próton", "Compõe a água junto com o oxigênio"}},
		{Name: "Hélio", Symbol: "He", Level: domain.LevelCurioso, Hints: []string{
			"Gás nobre usado em balões", "Segundo elemento mais leve", "Deixa a voz aguda"}},
		{Name: "Carbono", Symbol: "C", Level: domain.LevelCurioso, Hints: []string{
			"Base da química orgânica", "Forma o diamante e o grafite", "Número atômico seis"}},
		{Name: "Oxigênio", Symbol: "O", Level: domain.LevelCurioso, Hints: []string{
			"Essencial para a respiração", "Cerca de vinte e um por cento do ar", "Compõe a água junto com o hidrogênio"}},
		{Name: "Ferro", Symbol: "Fe", Level: domain.LevelExplorador, Hints: []string{
			"Metal presente na hemoglobina", "Principal componente do aço", "Símbolo vem do latim ferrum"}},
		{Name: "Sódio", Symbol: "Na", Level: domain.LevelExplorador, Hints: []string{
			"Metal alcalino que reage com água", "Presente no sal de cozinha", "Símbolo vem do latim natrium"}},
		{Name: "Urânio", Symbol: "U", Level: domain.LevelCientista, Hints: []string{
			"Usado como combustível nuclear", "Elemento natural mais pesado em abundância", "Número atômico noventa e dois"}},
		{Name: "Tungstênio", Symbol: "W", Level: domain.LevelCientista, Hints: []string{
			"Metal de maior ponto de fusão", "Usado em filamentos de lâmpada", "Símbolo vem de wolframita"}},
	}
}
