// Package http exposes the quiz over REST plus one websocket feed for the
// live leaderboard. Game routes are public; authoring and account routes sit
// behind the JWT middleware.
package http

import (
	"log/slog"
	"net/http"

	"bigbang-quiz-service/internal/app"
	"bigbang-quiz-service/internal/auth"
	"bigbang-quiz-service/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
)

type API struct {
	games     *app.GameService
	questions *app.QuestionService
	ranking   *app.RankingService
	admins    *app.AdminService
	tokens    *auth.TokenService
	images    *storage.ImageStore
	logger    *slog.Logger
	validate  *validator.Validate
}

func NewAPI(games *app.GameService, questions *app.QuestionService, ranking *app.RankingService, admins *app.AdminService, tokens *auth.TokenService, images *storage.ImageStore, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		games:     games,
		questions: questions,
		ranking:   ranking,
		admins:    admins,
		tokens:    tokens,
		images:    images,
		logger:    logger,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(cors.AllowAll().Handler)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.Route("/jogo", func(r chi.Router) {
		r.Post("/iniciar", a.startGame)
		r.Post("/{sessionID}/dica", a.revealHint)
		r.Post("/{sessionID}/resposta", a.guessElement)
		r.Post("/{sessionID}/posicao", a.guessPosition)
		r.Post("/{sessionID}/finalizar", a.finishGame)
		r.Get("/{sessionID}", a.getSession)
	})

	mux.Route("/ranking", func(r chi.Router) {
		r.Get("/", a.listRanking)
		r.Get("/top", a.topBoard)
		r.Post("/", a.submitScore)

		r.Group(func(r chi.Router) {
			r.Use(a.requireAuth)
			r.Delete("/{id}", a.deleteRankingEntry)
			r.Patch("/{id}", a.renameRankingPlayer)
		})
	})

	mux.Get("/ws/ranking", a.serveRankingFeed)

	mux.Get("/imagens/{arquivo}", a.serveImage)

	mux.Route("/administradores", func(r chi.Router) {
		r.Post("/login", a.login)
		r.Post("/registrar", a.registerAdmin)

		r.Group(func(r chi.Router) {
			r.Use(a.requireAuth)
			r.Get("/", a.listAdmins)
			r.Get("/{id}", a.getAdmin)
			r.Put("/{id}", a.updateAdmin)
			r.Delete("/{id}", a.deleteAdmin)
		})
	})

	mux.Route("/questoes", func(r chi.Router) {
		r.Use(a.requireAuth)
		r.Get("/", a.listQuestions)
		r.Post("/", a.createQuestion)
		r.Get("/{id}", a.getQuestion)
		r.Put("/{id}", a.updateQuestion)
		r.Delete("/{id}", a.deleteQuestion)
		r.Post("/{id}/imagem", a.attachQuestionImage)
	})

	return mux
}
