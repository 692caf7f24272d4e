package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"contaluz/internal/domain"
	"contaluz/internal/port"
)

// CreateUserInput is the DTO for admin user creation.
type CreateUserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

// UserService defines the account management contract.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
}

type userService struct {
	userRepo port.UserRepository
	email    port.EmailSender
}

// NewUserService creates a new UserService implementation.
func NewUserService(userRepo port.UserRepository, email port.EmailSender) UserService {
	return &userService{userRepo: userRepo, email: email}
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	role := domain.UserRole(input.Role)
	if role != domain.RoleAdmin {
		role = domain.RoleUser
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Welcome email is best-effort; account creation already succeeded.
	if err := s.email.SendWelcomeEmail(ctx, user.Email, user.Email); err != nil {
		log.Printf("userService.Create: welcome email to %s failed: %v", user.Email, err)
	}

	return user, nil
}
