package admin

type LoginRequest struct {
	Password string `json:"password" binding:"required,max=255"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
