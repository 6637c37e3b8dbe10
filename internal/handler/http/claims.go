package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kelolahr/hrms-backend-go/internal/domain/user"
)

// authClaims is the identity bundle handlers pull from the verified token.
type authClaims struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       user.Role
}

// claimsFromRequest extracts the claim set; user_id and company_id are
// mandatory, employee_id may be empty for admin accounts without an employee
// record.
func claimsFromRequest(r *http.Request) (authClaims, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return authClaims{}, err
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return authClaims{}, user.ErrMissingClaims
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return authClaims{}, user.ErrMissingClaims
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return authClaims{}, user.ErrMissingClaims
	}

	ac := authClaims{
		UserID:    userID,
		CompanyID: companyID,
		Role:      user.Role(roleStr),
	}
	if employeeID, ok := claims["employee_id"].(string); ok {
		ac.EmployeeID = employeeID
	}
	return ac, nil
}
