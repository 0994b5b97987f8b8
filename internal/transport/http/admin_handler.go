package http

import (
	"net/http"

	"bigbang-quiz-service/internal/app"
	"bigbang-quiz-service/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
}

type loginResponse struct {
	Token string               `json:"token"`
	Admin domain.Administrator `json:"administrador"`
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := a.decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	token, admin, err := a.admins.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, loginResponse{Token: token, Admin: admin})
}

type registerAdminRequest struct {
	Name            string `json:"nome" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"senha" validate:"required,min=6"`
	SuperAdmin      bool   `json:"superAdmin"`
	CanDeleteQuiz   bool   `json:"excluiQuiz"`
	CanDeleteScores bool   `json:"excluiRanking"`
	CanManageAdmins bool   `json:"gerenciaAdministradores"`
}

// registerAdmin is open for bootstrap: a token is not required, but when one
// is present its holder must be allowed to manage accounts.
func (a *API) registerAdmin(w http.ResponseWriter, r *http.Request) {
	if raw := r.Header.Get("Authorization"); raw != "" {
		a.requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := actorFrom(r.Context())
			if !actor.SuperAdmin && !actor.CanManageAdmins {
				a.writeError(w, r, domain.ErrPermissionDenied)
				return
			}
			a.register(w, r)
		})).ServeHTTP(w, r)
		return
	}
	a.register(w, r)
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var req registerAdminRequest
	if err := a.decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	admin, err := a.admins.Register(r.Context(), app.RegisterAdmin{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		SuperAdmin:      req.SuperAdmin,
		CanDeleteQuiz:   req.CanDeleteQuiz,
		CanDeleteScores: req.CanDeleteScores,
		CanManageAdmins: req.CanManageAdmins,
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, admin)
}

func (a *API) listAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := a.admins.List(r.Context(), actorFrom(r.Context()))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, admins)
}

func (a *API) getAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	admin, err := a.admins.Get(r.Context(), id)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, admin)
}

type updateAdminRequest struct {
	Name            *string `json:"nome"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Password        *string `json:"senha" validate:"omitempty,min=6"`
	CanDeleteQuiz   *bool   `json:"excluiQuiz"`
	CanDeleteScores *bool   `json:"excluiRanking"`
	CanManageAdmins *bool   `json:"gerenciaAdministradores"`
}

func (a *API) updateAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var req updateAdminRequest
	if err := a.decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	admin, err := a.admins.Update(r.Context(), actorFrom(r.Context()), id, app.UpdateAdmin{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Permissions: domain.Permissions{
			CanDeleteQuiz:   req.CanDeleteQuiz,
			CanDeleteScores: req.CanDeleteScores,
			CanManageAdmins: req.CanManageAdmins,
		},
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, admin)
}

func (a *API) deleteAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := a.admins.Delete(r.Context(), actorFrom(r.Context()), id); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusNoContent, nil)
}
