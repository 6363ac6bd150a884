package api

import (
	"context"
	"strings"

	"github.com/iliyamo/cinema-admin-dashboard/internal/apperr"
	"github.com/iliyamo/cinema-admin-dashboard/internal/model"
	"github.com/iliyamo/cinema-admin-dashboard/internal/utils"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Authenticate resolves credentials to an active admin.  POST /login is tried
// first; when it is missing, rejects the credentials or answers with a
// non-admin, the /users collection is scanned instead.  Every denial is the
// same generic AuthError.  A failure to list users is a NetworkError.
func (c *Client) Authenticate(ctx context.Context, email, password string) (model.Principal, error) {
	var u model.User
	err := c.do(ctx, "POST", "/login", loginRequest{Email: email, Password: password}, &u)
	if err == nil && u.Role == model.RoleAdmin && u.Active() && u.ID != "" {
		return model.PrincipalFromUser(u), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return model.Principal{}, &apperr.NetworkError{Op: "POST /login", Err: ctxErr}
	}

	users, err := c.ListUsers(ctx)
	if err != nil {
		return model.Principal{}, err
	}
	found, ok := matchAdmin(users, email, password)
	if !ok {
		return model.Principal{}, apperr.InvalidCredentials()
	}
	return model.PrincipalFromUser(found), nil
}

// matchAdmin finds the active admin whose email and stored password match.
// Emails compare case-insensitively.
func matchAdmin(users []model.User, email, password string) (model.User, bool) {
	for _, u := range users {
		if !strings.EqualFold(strings.TrimSpace(u.Email), email) {
			continue
		}
		if !utils.MatchStoredPassword(u.Password, password) {
			continue
		}
		if u.Role != model.RoleAdmin || !u.Active() {
			return model.User{}, false
		}
		return u, true
	}
	return model.User{}, false
}
