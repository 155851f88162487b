package ports

// Identity is the request-scoped result of verifying an access token.
// It is never persisted; its lifetime is one request.
type Identity struct {
	UserID string
	Role   string
}

// TokenService issues and verifies signed tokens bound to a user and role.
// Access and refresh tokens carry distinct classes: a refresh token never
// passes access verification, so the long-lived token cannot authenticate
// requests directly.
type TokenService interface {
	IssueAccessToken(userID, role string) (string, error)
	IssueRefreshToken(userID, role string) (string, error)
	VerifyAccess(token string) (*Identity, error)
	VerifyRefresh(token string) (*Identity, error)
}
