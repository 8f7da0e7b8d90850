package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-user-registry/internal/apperr"
	"go-user-registry/internal/service"
	resp "go-user-registry/internal/transport/http/response"
)

type UserHandler struct {
	svc *service.UserService
	log *zap.Logger
}

func NewUserHandler(svc *service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.JSON(c, http.StatusOK, users)
}

// POST /api/users 与 POST /api/register 共用（历史路径别名）
func (h *UserHandler) Register(c *gin.Context) {
	var in service.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, h.log, apperr.Validation("invalid request body"))
		return
	}
	u, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.JSON(c, http.StatusCreated, u)
}

// POST /api/login
func (h *UserHandler) Login(c *gin.Context) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, h.log, apperr.Validation("invalid request body"))
		return
	}
	u, err := h.svc.Login(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.JSON(c, http.StatusOK, u)
}

// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.Fail(c, h.log, apperr.Validation("id must be numeric"))
		return
	}
	gone, err := h.svc.Delete(c.Request.Context(), uint(id))
	if err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.JSON(c, http.StatusOK, gone)
}

// PUT /api/users/:id/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.Fail(c, h.log, apperr.Validation("id must be numeric"))
		return
	}
	var in struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, h.log, apperr.Validation("invalid request body"))
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), uint(id), in.Password); err != nil {
		resp.Fail(c, h.log, err)
		return
	}
	resp.JSON(c, http.StatusOK, gin.H{"id": uint(id)})
}

// GET /api/health
func (h *UserHandler) Health(c *gin.Context) {
	resp.JSON(c, http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"https":     c.Request.TLS != nil,
	})
}
