package auth

import (
	"context"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Me(ctx context.Context, userID string) (employee.EmployeeResponse, error)
}
