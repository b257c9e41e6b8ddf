// Package identity is the seam to the portal's identity provider. Tokens
// are issued elsewhere; this subsystem only reads the verified claims that
// the jwtauth middleware placed on the request context.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid or missing token")
	ErrAdminRequired = errors.New("admin privilege required")
)

// User is the authenticated caller as seen by this subsystem. Employees are
// identified by email; Admin gates payroll operations.
type User struct {
	Email string
	Role  string
	Admin bool
}

// CurrentUser extracts the authenticated user from the request context.
func CurrentUser(ctx context.Context) (User, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return User{}, fmt.Errorf("email claim is missing or invalid")
	}

	role, _ := claims["role"].(string)
	admin, _ := claims["is_admin"].(bool)

	return User{
		Email: email,
		Role:  role,
		Admin: admin,
	}, nil
}
