package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const TokenTypeAccess = "access"

var ErrMissingClaims = errors.New("token claims missing")

type Service interface {
	GenerateAccessToken(userID string, email string, role employee.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(userID string, email string, role employee.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id": userID,
		"email":   email,
		"role":    string(role),
		"type":    TokenTypeAccess,
		"exp":     expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// Claims is the caller identity carried by an access token.
type Claims struct {
	UserID string
	Email  string
	Role   employee.Role
}

func (c Claims) IsAdmin() bool {
	return c.Role == employee.RoleAdmin
}

// ClaimsFromContext reads the verified token placed in ctx by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, err
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Claims{}, ErrMissingClaims
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return Claims{UserID: userID, Email: email, Role: employee.Role(role)}, nil
}
