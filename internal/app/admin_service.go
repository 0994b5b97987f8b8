package app

import (
	"context"
	"strings"

	"bigbang-quiz-service/internal/auth"
	"bigbang-quiz-service/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// AdminRepository is the administrator account table.
type AdminRepository interface {
	ByID(ctx context.Context, id int64) (domain.Administrator, error)
	ByEmail(ctx context.Context, email string) (domain.Administrator, error)
	List(ctx context.Context) ([]domain.Administrator, error)
	Create(ctx context.Context, admin *domain.Administrator) error
	Update(ctx context.Context, admin *domain.Administrator) error
	Delete(ctx context.Context, id int64) error
}

// RegisterAdmin is the input for account creation.
type RegisterAdmin struct {
	Name            string
	Email           string
	Password        string
	SuperAdmin      bool
	CanDeleteQuiz   bool
	CanDeleteScores bool
	CanManageAdmins bool
}

// UpdateAdmin is the input for account edits. Nil fields mean "no change".
type UpdateAdmin struct {
	Name        *string
	Email       *string
	Password    *string
	Permissions domain.Permissions
}

// AdminService owns administrator accounts: registration, login and the
// guarded update/delete rules from the admin panel.
type AdminService struct {
	repo   AdminRepository
	tokens *auth.TokenService
}

func NewAdminService(repo AdminRepository, tokens *auth.TokenService) *AdminService {
	return &AdminService{repo: repo, tokens: tokens}
}

// Register creates an account. Intended for bootstrap and for administrators
// holding the manage permission; the transport gates the latter path.
func (s *AdminService) Register(ctx context.Context, in RegisterAdmin) (domain.Administrator, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.repo.ByEmail(ctx, in.Email); err == nil {
		return domain.Administrator{}, domain.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Administrator{}, err
	}
	admin := domain.Administrator{
		Name:            strings.TrimSpace(in.Name),
		Email:           in.Email,
		PasswordHash:    string(hash),
		SuperAdmin:      in.SuperAdmin,
		CanDeleteQuiz:   in.CanDeleteQuiz,
		CanDeleteScores: in.CanDeleteScores,
		CanManageAdmins: in.CanManageAdmins,
	}
	if err := s.repo.Create(ctx, &admin); err != nil {
		return domain.Administrator{}, err
	}
	return admin, nil
}

// Login verifies credentials and issues a JWT carrying the permission flags.
func (s *AdminService) Login(ctx context.Context, email, password string) (string, domain.Administrator, error) {
	admin, err := s.repo.ByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", domain.Administrator{}, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", domain.Administrator{}, domain.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(admin)
	if err != nil {
		return "", domain.Administrator{}, err
	}
	return token, admin, nil
}

// Get fetches one administrator.
func (s *AdminService) Get(ctx context.Context, id int64) (domain.Administrator, error) {
	return s.repo.ByID(ctx, id)
}

// List returns all accounts. Requesters without the manage permission get the
// permission flags masked out, so the panel only shows names and emails.
func (s *AdminService) List(ctx context.Context, actor auth.Context) ([]domain.Administrator, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if actor.SuperAdmin || actor.CanManageAdmins {
		return admins, nil
	}
	for i := range admins {
		admins[i].SuperAdmin = false
		admins[i].CanDeleteQuiz = false
		admins[i].CanDeleteScores = false
		admins[i].CanManageAdmins = false
	}
	return admins, nil
}

// Update edits an account. Administrators may edit themselves; editing a peer
// requires the manage permission. Permission changes from requesters lacking
// management rights are silently dropped to "no change" rather than rejected
// (degrade-to-no-op policy, kept from the observed behavior). Permission
// edits on a super admin by a non super admin are dropped the same way.
func (s *AdminService) Update(ctx context.Context, actor auth.Context, id int64, in UpdateAdmin) (domain.Administrator, error) {
	manages := actor.SuperAdmin || actor.CanManageAdmins
	if id != actor.AdminID && !manages {
		return domain.Administrator{}, domain.ErrPermissionDenied
	}

	admin, err := s.repo.ByID(ctx, id)
	if err != nil {
		return domain.Administrator{}, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		admin.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != admin.Email {
			if _, err := s.repo.ByEmail(ctx, email); err == nil {
				return domain.Administrator{}, domain.ErrDuplicateEmail
			}
			admin.Email = email
		}
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.Administrator{}, err
		}
		admin.PasswordHash = string(hash)
	}

	if manages && !(admin.SuperAdmin && !actor.SuperAdmin) {
		if in.Permissions.CanDeleteQuiz != nil {
			admin.CanDeleteQuiz = *in.Permissions.CanDeleteQuiz
		}
		if in.Permissions.CanDeleteScores != nil {
			admin.CanDeleteScores = *in.Permissions.CanDeleteScores
		}
		if in.Permissions.CanManageAdmins != nil {
			admin.CanManageAdmins = *in.Permissions.CanManageAdmins
		}
	}

	if err := s.repo.Update(ctx, &admin); err != nil {
		return domain.Administrator{}, err
	}
	return admin, nil
}

// Delete removes an account under the two hard rules: self-deletion is always
// forbidden, and only requesters holding the super-admin flag may delete at
// all. The guard checks the requester's flag, not the target's.
func (s *AdminService) Delete(ctx context.Context, actor auth.Context, id int64) error {
	if id == actor.AdminID {
		return domain.ErrSelfDeletion
	}
	if !actor.SuperAdmin {
		return domain.ErrProtectedAccount
	}
	if _, err := s.repo.ByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
