package service

import (
	"context"
	"testing"

	"reflecta-journal-be/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "default_secret")
	svc := NewAuthService(newFakeFactory())
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "user@example.com",
		Password: "password123",
		FullName: "Test User",
	})
	assert.NoError(t, err)

	login, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	// The token carries the user id claim.
	token, err := jwt.Parse(login.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("default_secret"), nil
	})
	assert.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, reg.Id.String(), claims["user_id"])
}

func TestAuthService_DuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeFactory())
	ctx := context.Background()

	req := &dto.RegisterRequest{
		Email:    "dup@example.com",
		Password: "password123",
		FullName: "First",
	}
	_, err := svc.Register(ctx, req)
	assert.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(newFakeFactory())
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "user@example.com",
		Password: "password123",
		FullName: "Test User",
	})
	assert.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "user@example.com", Password: "wrong"})
	assert.Error(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.Error(t, err)
}
