package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the error envelope every endpoint writes: a flat message
// under "error", optionally with extra detail for the client.
type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
	Detail any    `json:"detalle,omitempty"`
}

// AbortWithError writes the envelope and records the original error on the
// context so the logging middleware can surface it.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status, Error: msg, Detail: detail}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
