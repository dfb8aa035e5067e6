package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwt.Service
}

func NewAuthService(employeeRepository employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.LoginResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	// Cek password
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(emp.ID, emp.Email, emp.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	slog.Info("User logged in", "user_id", emp.ID, "role", emp.Role)

	return auth.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: auth.UserSummary{
			ID:           emp.ID,
			EmployeeCode: emp.EmployeeCode,
			Email:        emp.Email,
			FirstName:    emp.FirstName,
			LastName:     emp.LastName,
			Role:         string(emp.Role),
		},
	}, nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, userID string) (employee.EmployeeResponse, error) {
	if userID == "" {
		return employee.EmployeeResponse{}, auth.ErrUnauthorized
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, userID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}
