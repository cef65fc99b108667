package auth

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/leave-portal/internal/domain/auth"
	"github.com/cmlabs-hris/leave-portal/internal/domain/employee"
	"github.com/cmlabs-hris/leave-portal/internal/domain/user"
	"github.com/cmlabs-hris/leave-portal/internal/pkg/jwt"
	"github.com/cmlabs-hris/leave-portal/internal/pkg/validator"
	"github.com/cmlabs-hris/leave-portal/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func newAuthFixture(t *testing.T) (auth.AuthService, jwt.Service, employee.Employee) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	dept, err := store.Departments().Ensure(ctx, "Engineering")
	require.NoError(t, err)

	hash, err := HashPassword("Pass@123")
	require.NoError(t, err)
	emp, err := store.Employees().Create(ctx, employee.Employee{
		FullName:     "Manager",
		Email:        "manager@elp.local",
		PasswordHash: hash,
		DepartmentID: &dept.ID,
		Roles:        []user.Role{user.RoleManager},
	})
	require.NoError(t, err)

	jwtService := jwt.NewJWTService(testSecret, "1h")
	return NewAuthService(store.Employees(), jwtService), jwtService, emp
}

func TestLogin_Success(t *testing.T) {
	svc, jwtService, emp := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: "Manager@elp.local", Password: "Pass@123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, emp.ID, resp.EmployeeID)
	assert.Equal(t, []string{"manager"}, resp.Roles)
	require.NotNil(t, resp.DepartmentName)
	assert.Equal(t, "Engineering", *resp.DepartmentName)

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	principal, err := jwt.PrincipalFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, user.ScopeDepartment, principal.ReviewScope())
	assert.Equal(t, *emp.DepartmentID, *principal.DepartmentID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, auth.LoginRequest{Email: "manager@elp.local", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "nobody@elp.local", Password: "Pass@123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_ValidatesInput(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "email")
	assert.Contains(t, verrs.ToMap(), "password")
}

func TestLogout_RevokesToken(t *testing.T) {
	svc, jwtService, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, auth.LoginRequest{Email: "manager@elp.local", Password: "Pass@123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.AccessToken))
	assert.True(t, jwtService.IsTokenRevoked(resp.AccessToken))
	assert.ErrorIs(t, svc.Logout(ctx, ""), auth.ErrInvalidToken)
}
