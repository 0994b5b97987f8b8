package http

import (
	"net/http"
	"strconv"

	"bigbang-quiz-service/internal/app"
	"bigbang-quiz-service/internal/domain"

	"github.com/go-chi/chi/v5"
)

func (a *API) listRanking(w http.ResponseWriter, r *http.Request) {
	entries, err := a.ranking.Top(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, entries)
}

func (a *API) topBoard(w http.ResponseWriter, r *http.Request) {
	board, err := a.ranking.TopBoard(r.Context(), app.BoardSize)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, board)
}

type submitScoreRequest struct {
	Player   string `json:"usuario" validate:"required"`
	Score    int    `json:"pontuacao" validate:"min=0"`
	LevelTag string `json:"nivel" validate:"required"`
}

// submitScore is the direct submission path kept for clients that track the
// score themselves; server-driven sessions go through the finish endpoint.
func (a *API) submitScore(w http.ResponseWriter, r *http.Request) {
	var req submitScoreRequest
	if err := a.decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	entry := domain.RankingEntry{Player: req.Player, Score: req.Score, LevelTag: req.LevelTag}
	if err := a.ranking.Submit(r.Context(), &entry); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, entry)
}

func (a *API) deleteRankingEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := a.ranking.Delete(r.Context(), actorFrom(r.Context()), id); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusNoContent, nil)
}

type renamePlayerRequest struct {
	Player string `json:"usuario" validate:"required"`
}

func (a *API) renameRankingPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var req renamePlayerRequest
	if err := a.decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := a.ranking.RenamePlayer(r.Context(), actorFrom(r.Context()), id, req.Player); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusNoContent, nil)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errBadBody
	}
	return id, nil
}
