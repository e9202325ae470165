package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"quizzer/backend/config"
	"quizzer/backend/models"
	"quizzer/backend/repository"
	"quizzer/backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Roles    []string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type AuthService struct {
	store  *repository.Store
	cfg    *config.Config
	logger *log.Logger
}

func NewAuthService(store *repository.Store, cfg *config.Config, logger *log.Logger) *AuthService {
	return &AuthService{store: store, cfg: cfg, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	taken, err := s.store.Users.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, conflict("Username is already taken")
	}

	inUse, err := s.store.Users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, conflict("Email is already in use")
	}

	roles, err := parseRoles(input.Roles)
	if err != nil {
		return nil, err
	}
	// with auth on, TEACHER would unlock every write route
	if s.cfg.AuthEnabled && (models.User{Roles: roles}).HasRole(models.RoleTeacher) {
		return nil, newError(ErrForbidden, "TEACHER role cannot be self-assigned")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Roles:        roles,
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("Username or email is already registered")
		}
		s.logger.Printf("[ERROR] register %q: %v", input.Username, err)
		return nil, err
	}

	return s.issue(user)
}

// Login never says which of email or password was wrong.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.store.Users.FindByEmail(ctx, input.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrUnauthorized, "Invalid email or password")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, newError(ErrUnauthorized, "Invalid email or password")
	}

	return s.issue(user)
}

// Profile loads the account behind a verified token.
func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.store.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupErr(err, "user", userID)
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	role := string(user.PrimaryRole())
	token, err := utils.GenerateJWTToken(user.ID, user.Username, role, s.cfg)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Username: user.Username, Role: role}, nil
}

func parseRoles(raw []string) ([]models.Role, error) {
	if len(raw) == 0 {
		return []models.Role{models.RoleStudent}, nil
	}

	roles := make([]models.Role, 0, len(raw))
	for _, r := range raw {
		role := models.Role(strings.ToUpper(strings.TrimSpace(r)))
		if !role.Valid() {
			return nil, validation("unknown role %q", r)
		}
		roles = append(roles, role)
	}
	return roles, nil
}
