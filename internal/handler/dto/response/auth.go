package response

import "resione-server/internal/usecase/queries"

type LoginResponse struct {
	AccessToken string                      `json:"access_token"`
	User        *queries.AuthorizedUserView `json:"usuario"`
}

type RegisterResponse struct {
	Message string `json:"mensaje"`
	UserID  string `json:"id"`
}
