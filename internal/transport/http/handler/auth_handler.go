package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gym-class-booking/internal/service"
	"gym-class-booking/internal/transport/http/response"
)

type AuthHandler struct {
	svc *service.AuthService
	log *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

type registerReq struct {
	Name     string `json:"name" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in registerReq
	if err := bindJSON(c, &in); err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	res, err := h.svc.Register(c.Request.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	response.OK(c, http.StatusCreated, "User registered successfully", res)
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginReq
	if err := bindJSON(c, &in); err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	res, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	response.OK(c, http.StatusOK, "Login successful", res)
}
