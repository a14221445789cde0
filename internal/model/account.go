package model

// SignInRequest is the body of the sign-in placeholder.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest is the body of the sign-up placeholder.
type SignUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Notice is a user-facing alert: a title and a message.
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}
