package http

import "github.com/gin-gonic/gin"

// Register attaches the account routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/register", h.register)
	rg.POST("/login", h.logIn)
	rg.POST("/logout", h.logOut)
	rg.POST("/delete-user", h.deleteUser)
}
