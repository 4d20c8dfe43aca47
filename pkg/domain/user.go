package domain

// Token is the credential issued by the auth service.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// UserProfile is the authenticated user as reported by the auth service.
type UserProfile struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	CreditsBalance int    `json:"credits_balance"`
}
