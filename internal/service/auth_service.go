package service

import (
	"errors"

	"github.com/Rafael22222222/smartbiz.lux/internal/model"
	"github.com/Rafael22222222/smartbiz.lux/internal/repository"
	"github.com/Rafael22222222/smartbiz.lux/pkg/currency"
	"github.com/Rafael22222222/smartbiz.lux/pkg/jwt"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrEmailTaken         = errors.New("email already registered")
)

type AuthService interface {
	Register(req *RegisterRequest) (*LoginResponse, error)
	Login(email, password string) (*LoginResponse, error)
	ValidateToken(tokenString string) (*model.UserResponse, error)
	UpdateCurrency(userID uuid.UUID, code string) (*model.UserResponse, error)
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(req *RegisterRequest) (*LoginResponse, error) {
	if verr := validationError(req); verr != nil {
		return nil, verr
	}

	existing, err := s.userRepo.FindByEmail(req.Email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	user := &model.User{
		Email:    req.Email,
		FullName: req.FullName,
		Currency: currency.DefaultCode,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *authService) ValidateToken(tokenString string) (*model.UserResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) UpdateCurrency(userID uuid.UUID, code string) (*model.UserResponse, error) {
	if !currency.IsSupported(code) {
		return nil, &model.ValidationError{Field: "currency", Reason: "unsupported currency code"}
	}

	if err := s.userRepo.UpdateCurrency(userID, code); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) issueToken(user *model.User) (*LoginResponse, error) {
	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
