package users

import (
	"context"
	"errors"
	"strings"

	"gamehub-backend/internal/models"
	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/pkg/validation"
	"gamehub-backend/internal/repository"
	"gamehub-backend/internal/service"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service owns user accounts and roles. Passwords are bcrypt-hashed before
// storage and never leave the service; email uniqueness is enforced both by a
// pre-check and by the unique index.
type Service struct {
	*service.Service[models.User]
	Roles *repository.Repository[models.Role]
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		Service: service.New(repository.New[models.User](db, "id", "name", "email", "created_at")),
		Roles:   repository.New[models.Role](db, "id", "name"),
	}
}

type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   *uint  `json:"role_id"`
	RoleName string `json:"role_name"`
}

func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperrors.Validation("name is required")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !validation.IsValidEmail(email) {
		return nil, apperrors.Validation("Invalid email address")
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, apperrors.Unprocessable("password must be at least 8 characters with a letter, a digit and a special character")
	}

	existing, err := s.Repo.GetOneBy(ctx, map[string]interface{}{"email": email})
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("Email already registered")
	}

	roleID, err := s.resolveRole(ctx, in.RoleID, in.RoleName)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password")
	}

	user := &models.User{
		Name:           strings.TrimSpace(in.Name),
		Email:          email,
		HashedPassword: string(hash),
		RoleID:         roleID,
	}
	if err := s.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Email already registered")
		}
		return nil, apperrors.FromDB(err)
	}
	return user, nil
}

// resolveRole prefers an explicit role id; a role name is looked up, created
// on first use, and an empty input defaults to the "user" role.
func (s *Service) resolveRole(ctx context.Context, roleID *uint, roleName string) (*uint, error) {
	if roleID != nil {
		role, err := s.Roles.Get(ctx, *roleID)
		if err != nil {
			return nil, apperrors.FromDB(err)
		}
		if role == nil {
			return nil, apperrors.Validation("Unknown role_id")
		}
		return roleID, nil
	}
	name := strings.ToLower(strings.TrimSpace(roleName))
	if name == "" {
		name = "user"
	}
	role, err := s.Roles.GetOneBy(ctx, map[string]interface{}{"name": name})
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if role == nil {
		role = &models.Role{Name: name}
		if err := s.Roles.Create(ctx, role); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				role, err = s.Roles.GetOneBy(ctx, map[string]interface{}{"name": name})
				if err != nil || role == nil {
					return nil, apperrors.FromDB(err)
				}
			} else {
				return nil, apperrors.FromDB(err)
			}
		}
	}
	return &role.ID, nil
}

func (s *Service) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user", id)
	}
	return user, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.Repo.GetOneBy(ctx, map[string]interface{}{
		"email": strings.ToLower(strings.TrimSpace(email)),
	})
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	users, err := s.GetAll(ctx, skip, limit, "id", false)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	return users, nil
}

// UpdateUser patches name/email/password. A password change re-hashes; an
// email change re-runs the duplicate check.
func (s *Service) UpdateUser(ctx context.Context, id uint, changes map[string]interface{}) (*models.User, error) {
	if raw, ok := changes["email"]; ok {
		email, isStr := raw.(string)
		email = strings.ToLower(strings.TrimSpace(email))
		if !isStr || !validation.IsValidEmail(email) {
			return nil, apperrors.Validation("Invalid email address")
		}
		other, err := s.Repo.GetOneBy(ctx, map[string]interface{}{"email": email})
		if err != nil {
			return nil, apperrors.FromDB(err)
		}
		if other != nil && other.ID != id {
			return nil, apperrors.Conflict("Email already registered")
		}
		changes["email"] = email
	}
	if raw, ok := changes["password"]; ok {
		password, isStr := raw.(string)
		if !isStr || !validation.IsValidPassword(password) {
			return nil, apperrors.Unprocessable("password must be at least 8 characters with a letter, a digit and a special character")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Internal("Failed to hash password")
		}
		delete(changes, "password")
		changes["hashed_password"] = string(hash)
	}

	user, err := s.Update(ctx, id, changes)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Email already registered")
		}
		return nil, apperrors.FromDB(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user", id)
	}
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id uint) error {
	found, err := s.Delete(ctx, id)
	if err != nil {
		return apperrors.FromDB(err)
	}
	if !found {
		return apperrors.NotFound("user", id)
	}
	return nil
}

// VerifyCredentials returns the user when the email/password pair is valid,
// and the user's role name for the session.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", apperrors.Unauthorized("Invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return nil, "", apperrors.Unauthorized("Invalid email or password")
	}
	roleName, err := s.RoleName(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, roleName, nil
}

// RoleName resolves the user's role name, defaulting to "user".
func (s *Service) RoleName(ctx context.Context, user *models.User) (string, error) {
	if user.RoleID == nil {
		return "user", nil
	}
	role, err := s.Roles.Get(ctx, *user.RoleID)
	if err != nil {
		return "", apperrors.FromDB(err)
	}
	if role == nil {
		return "user", nil
	}
	return role.Name, nil
}
