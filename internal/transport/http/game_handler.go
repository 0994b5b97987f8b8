package http

import (
	"net/http"

	"bigbang-quiz-service/internal/domain"

	"github.com/go-chi/chi/v5"
)

type startGameRequest struct {
	Level int `json:"nivel" validate:"required,min=1,max=3"`
}

type startGameResponse struct {
	SessionID  string          `json:"codSessao"`
	Level      domain.Level    `json:"nivel"`
	Options    []domain.Option `json:"listaOpcoes"`
	Rounds     []domain.Round  `json:"rodadas"`
	RoundLimit int             `json:"limiteRodadas"`
}

func (a *API) startGame(w http.ResponseWriter, r *http.Request) {
	var req startGameRequest
	if err := a.decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	session, err := a.games.Start(r.Context(), domain.Level(req.Level))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, startGameResponse{
		SessionID:  session.ID,
		Level:      session.Level,
		Options:    session.Options,
		Rounds:     session.Rounds,
		RoundLimit: session.RoundLimit,
	})
}

func (a *API) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := a.games.Session(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, session)
}

func (a *API) revealHint(w http.ResponseWriter, r *http.Request) {
	result, err := a.games.RevealHint(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, result)
}

type guessElementRequest struct {
	Name string `json:"nomeElemento" validate:"required"`
}

func (a *API) guessElement(w http.ResponseWriter, r *http.Request) {
	var req guessElementRequest
	if err := a.decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	result, err := a.games.GuessElement(r.Context(), chi.URLParam(r, "sessionID"), req.Name)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, result)
}

type guessPositionRequest struct {
	Position string `json:"posicaoElemento" validate:"required"`
}

func (a *API) guessPosition(w http.ResponseWriter, r *http.Request) {
	var req guessPositionRequest
	if err := a.decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	result, err := a.games.GuessPosition(r.Context(), chi.URLParam(r, "sessionID"), req.Position)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, result)
}

type finishGameRequest struct {
	Player string `json:"usuario" validate:"required"`
}

func (a *API) finishGame(w http.ResponseWriter, r *http.Request) {
	var req finishGameRequest
	if err := a.decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	entry, err := a.games.Finish(r.Context(), chi.URLParam(r, "sessionID"), req.Player)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, entry)
}
