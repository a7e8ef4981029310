package request

type LoginRequest struct {
	Email    string `json:"correo" binding:"required,email"`
	Password string `json:"clave" binding:"required"`
}

type RegisterUserRequest struct {
	Email      string `json:"correo" binding:"required,email"`
	Password   string `json:"clave" binding:"required,min=8"`
	Name       string `json:"nombre" binding:"required"`
	Unit       string `json:"apartamento" binding:"required"`
	NationalID string `json:"identificacion" binding:"required"`
}
