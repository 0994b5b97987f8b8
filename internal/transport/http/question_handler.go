package http

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"bigbang-quiz-service/internal/app"
	"bigbang-quiz-service/internal/domain"

	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 10 << 20

type questionRequest struct {
	Name              string   `json:"nomeElemento" validate:"required"`
	Symbol            string   `json:"simbolo" validate:"required"`
	Level             int      `json:"nivel" validate:"required,min=1,max=3"`
	Hints             []string `json:"dicas" validate:"required,len=3,dive,required"`
	ImagePath         string   `json:"imagem"`
	DistributionImage string   `json:"distribuicaoEletronica"`
}

func (q questionRequest) toDomain(id int64) domain.Question {
	return domain.Question{
		ID:                id,
		Name:              q.Name,
		Symbol:            q.Symbol,
		Level:             domain.Level(q.Level),
		Hints:             q.Hints,
		ImagePath:         q.ImagePath,
		DistributionImage: q.DistributionImage,
	}
}

func (a *API) listQuestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("pagina"))
	size, _ := strconv.Atoi(query.Get("tamanho"))
	level, _ := strconv.Atoi(query.Get("nivel"))

	result, err := a.questions.List(r.Context(), app.ListFilter{
		Search: query.Get("busca"),
		Level:  domain.Level(level),
		Page:   page,
		Size:   size,
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, result)
}

func (a *API) getQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	question, err := a.questions.Get(r.Context(), id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, question)
}

func (a *API) createQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := a.decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	question := req.toDomain(0)
	if err := a.questions.Create(r.Context(), &question); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, question)
}

func (a *API) updateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var req questionRequest
	if err := a.decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	question := req.toDomain(id)
	if err := a.questions.Update(r.Context(), &question); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, question)
}

func (a *API) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := a.questions.Delete(r.Context(), actorFrom(r.Context()), id); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusNoContent, nil)
}

// attachQuestionImage receives a multipart upload for one of the two image
// slots; the "tipo" field selects between element picture and electron
// distribution diagram.
func (a *API) attachQuestionImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.writeError(w, r, errBadBody)
		return
	}
	file, header, err := r.FormFile("arquivo")
	if err != nil {
		a.writeError(w, r, errBadBody)
		return
	}
	defer file.Close()

	kind := app.ImageMain
	if r.FormValue("tipo") == string(app.ImageDistribution) {
		kind = app.ImageDistribution
	}

	question, err := a.questions.AttachImage(r.Context(), id, kind, header.Filename, file)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, question)
}

// serveImage streams a stored upload back to the client.
func (a *API) serveImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "arquivo")
	f, err := a.images.Open(name)
	if err != nil {
		a.writeJSON(w, http.StatusNotFound, errorBody{Message: "imagem não encontrada"})
		return
	}
	defer f.Close()

	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if _, err := io.Copy(w, f); err != nil {
		a.logger.Debug("stream image", "error", err)
	}
}
