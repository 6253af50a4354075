package api

import (
	"github.com/gin-gonic/gin"
)

// envelope is the uniform response shape. Every handler reply is either
// {success:true, data:...} or {success:false, error:"..."}; no other
// error representation crosses the HTTP boundary.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(200, envelope{Success: true, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: false, Error: message})
}
