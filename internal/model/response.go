package model

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Message string  `json:"message"`
	Token   string  `json:"token"`
	Role    string  `json:"role"`
	Data    Account `json:"data"`
}

// FileResponse describes a stored resume
type FileResponse struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}
