package handler

// messageResponse is the envelope for human-readable outcomes, kept
// wire-compatible with the legacy API.
type messageResponse struct {
	Message string `json:"message"`
}

type registerRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Login    string `json:"login" validate:"required"`
	Password string `json:"senha" validate:"required"`
	Roles    string `json:"roles"`
}

// registerResponse deliberately omits the password hash.
type registerResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
	Login string `json:"login"`
	Roles string `json:"roles"`
}

type loginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"senha" validate:"required"`
}

type loginResponse struct {
	ID    uint   `json:"id"`
	Login string `json:"login"`
	Name  string `json:"nome"`
	Roles string `json:"roles"`
	Token string `json:"token"`
}
