package service

import (
	"errors"

	"revu/internal/auth"
	"revu/internal/domain"
	"revu/internal/models"
	"revu/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrUsernameExists = errors.New("username already taken")
	ErrEmailExists    = errors.New("email already registered")
	ErrInvalidCreds   = errors.New("invalid username or password")
	ErrInvalidRole    = errors.New("role must be influencer or advertiser")
)

type AuthService struct {
	users *repository.UserRepository
}

func NewAuthService(users *repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// RegisterInput carries the registration payload; Role is fixed at creation
// and never changes afterwards.
type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	Name         string
	Role         string
	ProfileImage string
	Bio          string
	Followers    int
	InstagramID  string
	BlogURL      string
	TwitterID    string
}

func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	if !domain.ValidRole(in.Role) {
		return nil, ErrInvalidRole
	}
	_, err := s.users.GetByUsername(in.Username)
	if err == nil {
		return nil, ErrUsernameExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	_, err = s.users.GetByEmail(in.Email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Role:         in.Role,
		ProfileImage: in.ProfileImage,
		Bio:          in.Bio,
		Followers:    in.Followers,
		InstagramID:  in.InstagramID,
		BlogURL:      in.BlogURL,
		TwitterID:    in.TwitterID,
	}
	if err := s.users.Create(u); err != nil {
		// the unique indexes catch the register/register race
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(username, password string) (*models.User, error) {
	u, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCreds
		}
		return nil, err
	}
	if !auth.VerifyPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCreds
	}
	return u, nil
}
