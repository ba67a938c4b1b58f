package identity

import (
	"context"
	"errors"

	"fintrack/config"
	"fintrack/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LocalProvider stores credentials in the application database. It exists so
// the server runs without a hosted identity service; its error messages match
// the hosted provider's so the auth routes behave identically either way.
type LocalProvider struct {
	db     *gorm.DB
	expire config.JWTConfig
}

// NewLocalProvider creates a provider over the given database handle.
func NewLocalProvider(db *gorm.DB, cfg *config.Config) *LocalProvider {
	return &LocalProvider{
		db:     db,
		expire: cfg.Auth.JWT,
	}
}

// SignUp creates a credential record. Email uniqueness is enforced by the
// users table.
func (p *LocalProvider) SignUp(ctx context.Context, params SignUpParams) (*User, error) {
	var existing models.User
	err := p.db.WithContext(ctx).Where("email = ?", params.Email).First(&existing).Error
	if err == nil {
		return nil, &Error{Code: CodeUserExists, Message: "User already registered"}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        params.Email,
		Username:     params.Username,
		PasswordHash: string(hash),
	}
	if err := p.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return publicUser(&user), nil
}

// SignInWithPassword verifies credentials and mints an access token.
func (p *LocalProvider) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var user models.User
	err := p.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &Error{Code: CodeUserNotFound, Message: "User not found"}
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, &Error{Code: CodeInvalidCredentials, Message: "Invalid login credentials"}
	}

	token, err := GenerateToken(user.ID, user.Email, p.expire.ExpireTime)
	if err != nil {
		return nil, err
	}

	return &Session{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(p.expire.ExpireTime.Seconds()),
		User:        *publicUser(&user),
	}, nil
}

func publicUser(u *models.User) *User {
	return &User{
		ID:           u.ID,
		Email:        u.Email,
		UserMetadata: Metadata{Username: u.Username},
		CreatedAt:    u.CreatedAt,
	}
}
