package models

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is what POST /api/login returns on success. Only the token
// is required; the remaining fields are informational.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	Username    string `json:"username,omitempty"`
	Role        Role   `json:"role,omitempty"`
}
