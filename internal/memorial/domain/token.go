package domain

// SessionClaims is the identity claim-set carried by a session token.
// Tokens are stateless: nothing here is persisted server-side.
type SessionClaims struct {
	UserID string `json:"sub"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}
