package service

import (
	"context"
	"fmt"

	"github.com/waxads/easy-grown/internal"
	"github.com/waxads/easy-grown/internal/auth"
	"github.com/waxads/easy-grown/internal/storage"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register stores a new account with the default role. A taken email yields
// internal.ErrDuplicateEmail.
func Register(ctx context.Context, users storage.UserRepository, hasher auth.Hasher, req *RegisterRequest) (int64, error) {
	hash, err := hasher.Hash(req.Password)
	if err != nil {
		return -1, err
	}
	user := &internal.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         internal.RoleUser,
	}
	return users.CreateUser(ctx, user)
}

// Login checks the credentials. An unknown email yields internal.ErrNotFound,
// a wrong password internal.ErrInvalidCredentials.
func Login(ctx context.Context, users storage.UserRepository, hasher auth.Hasher, req *LoginRequest) (*internal.PublicUser, error) {
	user, err := users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if err := hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", internal.ErrInvalidCredentials, err)
	}
	pub := user.Public()
	return &pub, nil
}
