package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recovglox/recovglox-backend/internal/users/domain"
)

func (h *Handler) register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.Email == "" || req.Password == "" || req.Nombre == "" || req.UserType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Faltan campos requeridos."})
		return
	}

	uid, err := h.registration.Register(c.Request.Context(), req)
	if err != nil {
		log.Printf("Error en /register: %v", err)
		switch {
		case errors.Is(err, domain.ErrNotInvited):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "No estás autorizado por un fisioterapeuta para registrarte."})
		case errors.Is(err, domain.ErrAlreadyRegistered):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "El correo ya está registrado. Por favor, inicia sesión."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Usuario registrado", "uid": uid})
}

func (h *Handler) logIn(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Faltan email o contraseña."})
		return
	}

	uid, user, err := h.login.Login(c.Request.Context(), req.Email)
	if err != nil {
		log.Printf("Error en /login: %v", err)
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Usuario no encontrado en la base de datos."})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Credenciales inválidas o usuario no encontrado."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "uid": uid, "user": user})
}

func (h *Handler) logOut(c *gin.Context) {
	// Stateless: the client discards its token.
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Sesión cerrada correctamente."})
}

type deleteUserReq struct {
	Email string `json:"email"`
}

func (h *Handler) deleteUser(c *gin.Context) {
	var req deleteUserReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Falta el correo del usuario."})
		return
	}

	if err := h.deletion.Delete(c.Request.Context(), req.Email); err != nil {
		log.Printf("Error en /delete-user: %v", err)
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Usuario no encontrado en Firebase Authentication."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Usuario eliminado correctamente."})
}
