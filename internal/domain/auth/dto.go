package auth

import (
	"strings"

	"github.com/cmlabs-hris/leave-portal/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.TrimSpace(r.Email)
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address")
	}
	if r.Password == "" {
		errs.Add("password", "password is required")
	}

	return errs.OrNil()
}

type TokenResponse struct {
	AccessToken          string   `json:"access_token"`
	AccessTokenExpiresAt int64    `json:"access_token_expires_at"`
	EmployeeID           string   `json:"employee_id"`
	FullName             string   `json:"full_name"`
	DepartmentID         *int64   `json:"department_id"`
	DepartmentName       *string  `json:"department_name,omitempty"`
	Roles                []string `json:"roles"`
}
