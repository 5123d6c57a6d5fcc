package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gym-class-booking/internal/service"
	"gym-class-booking/internal/transport/http/middleware"
	"gym-class-booking/internal/transport/http/response"
)

type TrainerHandler struct {
	svc *service.TrainerService
	log *zap.Logger
}

func NewTrainerHandler(svc *service.TrainerService, log *zap.Logger) *TrainerHandler {
	return &TrainerHandler{svc: svc, log: log}
}

func (h *TrainerHandler) ListOwnSchedules(c *gin.Context) {
	scs, err := h.svc.ListOwnSchedules(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	response.OK(c, http.StatusOK, "Schedules retrieved successfully", scs)
}
