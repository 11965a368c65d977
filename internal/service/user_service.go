package service

import (
	"context"
	"strings"

	"vitrine/internal/models"
	"vitrine/internal/repository"
	"vitrine/internal/session"
	"vitrine/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
	sessions *session.Store
}

func NewUserService(userRepo repository.UserRepository, sessions *session.Store) *UserService {
	return &UserService{userRepo: userRepo, sessions: sessions}
}

type CreateUserInput struct {
	Email string
	Login string
	Senha string
	Plano string
}

type EditUserInput struct {
	Email  string
	Login  string
	Senha  string
	Plano  string
	Status string
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	login := strings.TrimSpace(in.Login)

	if email == "" || login == "" || in.Senha == "" {
		return nil, models.NewValidationError("Email, login and senha are required")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateLogin(login); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Senha); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if !models.IsValidPlan(in.Plano) {
		return nil, models.NewValidationError("Invalid plano")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:  email,
		Login:  login,
		Senha:  string(hashed),
		Plano:  in.Plano,
		Status: models.UserStatusAtivo,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// produce the same error so the response does not leak which one failed.
func (s *UserService) Login(ctx context.Context, email, senha string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || senha == "" {
		return nil, "", models.NewUnauthorizedError("invalid credentials")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", models.NewUnauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Senha), []byte(senha)); err != nil {
		return nil, "", models.NewUnauthorizedError("invalid credentials")
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, token, nil
}

func (s *UserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// EditByEmail replaces the account fields with the provided values. Status
// falls back to "ativo" when the caller leaves it unset.
func (s *UserService) EditByEmail(ctx context.Context, email string, in EditUserInput) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", email)
	}

	if in.Email != "" {
		newEmail := strings.TrimSpace(strings.ToLower(in.Email))
		if validateErr := validation.ValidateEmail(newEmail); validateErr != nil {
			return nil, models.NewValidationError(validateErr.Error())
		}
		user.Email = newEmail
	}
	if in.Login != "" {
		login := strings.TrimSpace(in.Login)
		if validateErr := validation.ValidateLogin(login); validateErr != nil {
			return nil, models.NewValidationError(validateErr.Error())
		}
		user.Login = login
	}
	if in.Senha != "" {
		if validateErr := validation.ValidatePassword(in.Senha); validateErr != nil {
			return nil, models.NewValidationError(validateErr.Error())
		}
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(in.Senha), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, models.NewInternalError(hashErr)
		}
		user.Senha = string(hashed)
	}
	if in.Plano != "" {
		if !models.IsValidPlan(in.Plano) {
			return nil, models.NewValidationError("Invalid plano")
		}
		user.Plano = in.Plano
	}
	if in.Status != "" {
		user.Status = in.Status
	} else {
		user.Status = models.UserStatusAtivo
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
