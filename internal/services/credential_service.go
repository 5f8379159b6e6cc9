package services

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"pennyplan/internal/auth"
	apperrors "pennyplan/internal/errors"
	"pennyplan/internal/models"
	"pennyplan/internal/store"
	"pennyplan/internal/validator"
)

// credentialService handles registration, login, and account maintenance.
type credentialService struct {
	users *store.UserStore
	plans *store.PlanStore
	codec *auth.Codec
}

// NewCredentialService creates a new CredentialServicer.
func NewCredentialService(users *store.UserStore, plans *store.PlanStore, codec *auth.Codec) CredentialServicer {
	return &credentialService{users: users, plans: plans, codec: codec}
}

// Register creates a new user. Username and email must be unique
// (case-sensitive exact match). Registration does not issue a token;
// callers that need one authenticate afterwards.
func (s *credentialService) Register(input RegisterInput) (models.User, error) {
	if err := validator.Struct(input); err != nil {
		return models.User{}, err
	}

	if s.users.UsernameTaken(input.Username) {
		return models.User{}, apperrors.ErrDuplicateUsername
	}
	if s.users.EmailTaken(input.Email) {
		return models.User{}, apperrors.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := time.Now()
	user := models.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		Email:        input.Email,
		Phone:        input.Phone,
		Settings:     models.Settings{PreferredCurrency: models.CurrencyCNY},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.users.Put(user)
}

// Authenticate verifies the credentials and mints a fresh session. An
// unknown username and a wrong password are indistinguishable to the
// caller.
func (s *credentialService) Authenticate(username, password string) (auth.Session, error) {
	user, ok := s.users.FindByUsername(username)
	if !ok {
		return auth.Session{}, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return auth.Session{}, apperrors.ErrInvalidCredentials
	}

	return s.codec.Issue(user.Username, user.ID)
}

// GetUserByID returns the user with the given id.
func (s *credentialService) GetUserByID(id string) (models.User, error) {
	user, ok := s.users.Get(id)
	if !ok {
		return models.User{}, apperrors.ErrUserNotFound
	}
	return user, nil
}

// UpdateSettings replaces the user's preferences. This is the only
// mutation path for an existing account.
func (s *credentialService) UpdateSettings(userID string, settings models.Settings) (models.User, error) {
	if !settings.PreferredCurrency.Valid() {
		return models.User{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported preferred currency")
	}

	user, ok := s.users.Get(userID)
	if !ok {
		return models.User{}, apperrors.ErrUserNotFound
	}

	user.Settings = settings
	user.UpdatedAt = time.Now()
	return s.users.Put(user)
}

// DeleteAccount removes the user and every plan they own.
func (s *credentialService) DeleteAccount(userID string) error {
	if _, ok := s.users.Get(userID); !ok {
		return apperrors.ErrUserNotFound
	}

	for _, p := range s.plans.FindByOwner(userID) {
		if err := s.plans.Delete(p.ID); err != nil {
			return err
		}
	}
	return s.users.Delete(userID)
}
