package httpdto

// RegisterRequest is used for POST /register
type RegisterRequest struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
	Image    string `json:"image" form:"image"`
}

// LoginRequest is used for POST /login
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// TokenResponse is returned after successful login
type TokenResponse struct {
	Token string `json:"token"`
}
