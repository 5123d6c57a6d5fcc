package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gym-class-booking/internal/service"
	"gym-class-booking/internal/transport/http/response"
)

type AdminHandler struct {
	svc *service.AdminService
	log *zap.Logger
}

func NewAdminHandler(svc *service.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, log: log}
}

func (h *AdminHandler) CreateTrainer(c *gin.Context) {
	var in registerReq
	if err := bindJSON(c, &in); err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	u, err := h.svc.CreateTrainer(c.Request.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	response.OK(c, http.StatusCreated, "Trainer created successfully", u)
}

func (h *AdminHandler) ListTrainers(c *gin.Context) {
	us, err := h.svc.ListTrainers(c.Request.Context())
	if err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	response.OK(c, http.StatusOK, "Trainers retrieved successfully", us)
}

type createScheduleReq struct {
	TrainerID uint64 `json:"trainerId" binding:"required,gt=0"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

func (h *AdminHandler) CreateSchedule(c *gin.Context) {
	var in createScheduleReq
	if err := bindJSON(c, &in); err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	date, err := parseTime("date", in.Date)
	if err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	start, err := parseTime("startTime", in.StartTime)
	if err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	end, err := parseTime("endTime", in.EndTime)
	if err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	sc, err := h.svc.CreateSchedule(c.Request.Context(), service.CreateScheduleInput{
		TrainerID: in.TrainerID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	response.OK(c, http.StatusCreated, "Class schedule created successfully", sc)
}

func (h *AdminHandler) ListSchedules(c *gin.Context) {
	scs, err := h.svc.ListSchedules(c.Request.Context())
	if err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	response.OK(c, http.StatusOK, "Class schedules retrieved successfully", scs)
}

type updateScheduleReq struct {
	TrainerID *uint64 `json:"trainerId" binding:"omitempty,gt=0"`
}

func (h *AdminHandler) UpdateSchedule(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	var in updateScheduleReq
	if err := bindJSON(c, &in); err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	sc, err := h.svc.UpdateSchedule(c.Request.Context(), id, in.TrainerID)
	if err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	response.OK(c, http.StatusOK, "Class schedule updated successfully", sc)
}

func (h *AdminHandler) DeleteSchedule(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	if err := h.svc.DeleteSchedule(c.Request.Context(), id); err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	response.OK(c, http.StatusOK, "Class schedule deleted successfully", nil)
}
