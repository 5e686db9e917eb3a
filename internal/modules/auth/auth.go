package auth

import (
	"crypto/subtle"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/groupmirror/core/internal/pkg/jwt"
	"github.com/groupmirror/core/internal/pkg/response"
)

const tokenTTL = 7 * 24 * time.Hour

// Handler implements the single-operator login. The password comes from
// the runtime config file; there is no user table.
type Handler struct {
	adminPassword string
}

func NewHandler(adminPassword string) *Handler {
	return &Handler{adminPassword: adminPassword}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.login)
}

type loginDTO struct {
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var dto loginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if h.adminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(dto.Password), []byte(h.adminPassword)) != 1 {
		response.Unauthorized(c)
		return
	}

	token, err := jwt.Sign(tokenTTL)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"token": token})
}
