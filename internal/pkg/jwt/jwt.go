package jwt

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-portal/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(principal user.Principal, email string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	revokedTokens             map[string]int64
	mu                        sync.RWMutex
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:             make(map[string]int64),
	}
}

func (j *JWTService) GenerateAccessToken(principal user.Principal, email string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	roles := make([]string, 0, len(principal.Roles))
	for _, r := range principal.Roles {
		roles = append(roles, string(r))
	}

	claims := map[string]interface{}{
		"employee_id":   principal.EmployeeID,
		"email":         email,
		"department_id": nil,
		"roles":         roles,
		"type":          "access",
		"exp":           expiresAt,
	}
	if principal.DepartmentID != nil {
		claims["department_id"] = *principal.DepartmentID
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) RevokeToken(token string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = time.Now().Unix()
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// PrincipalFromClaims rebuilds the caller identity from access token claims.
func PrincipalFromClaims(claims map[string]interface{}) (user.Principal, error) {
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return user.Principal{}, user.ErrInvalidToken
	}

	employeeID, _ := claims["employee_id"].(string)
	if employeeID == "" {
		return user.Principal{}, user.ErrInvalidToken
	}
	principal := user.Principal{EmployeeID: employeeID}

	if raw, ok := claims["department_id"]; ok && raw != nil {
		id, ok := toInt64(raw)
		if !ok {
			return user.Principal{}, user.ErrInvalidToken
		}
		principal.DepartmentID = &id
	}

	var roles []string
	switch v := claims["roles"].(type) {
	case []string:
		roles = v
	case []interface{}:
		for _, r := range v {
			s, ok := r.(string)
			if !ok {
				return user.Principal{}, user.ErrInvalidToken
			}
			roles = append(roles, s)
		}
	}
	for _, r := range roles {
		role, ok := user.ParseRole(r)
		if !ok {
			return user.Principal{}, user.ErrInvalidRole
		}
		principal.Roles = append(principal.Roles, role)
	}

	return principal, nil
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), n == float64(int64(n))
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}
