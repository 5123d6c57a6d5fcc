package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gym-class-booking/internal/service"
	"gym-class-booking/internal/transport/http/middleware"
	"gym-class-booking/internal/transport/http/response"
)

type TraineeHandler struct {
	svc *service.TraineeService
	log *zap.Logger
}

func NewTraineeHandler(svc *service.TraineeService, log *zap.Logger) *TraineeHandler {
	return &TraineeHandler{svc: svc, log: log}
}

type updateProfileReq struct {
	Name     string `json:"name" binding:"omitempty,min=3,max=64"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

func (h *TraineeHandler) UpdateProfile(c *gin.Context) {
	var in updateProfileReq
	if err := bindJSON(c, &in); err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	u, err := h.svc.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), service.UpdateProfileInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	response.OK(c, http.StatusOK, "Profile updated successfully", u)
}

type createBookingReq struct {
	ScheduleID uint64 `json:"scheduleId" binding:"required,gt=0"`
}

func (h *TraineeHandler) CreateBooking(c *gin.Context) {
	var in createBookingReq
	if err := bindJSON(c, &in); err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	b, err := h.svc.CreateBooking(c.Request.Context(), middleware.CurrentUserID(c), in.ScheduleID)
	middleware.CountBooking("create", err == nil)
	if err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	response.OK(c, http.StatusCreated, "Class booked successfully", b)
}

func (h *TraineeHandler) ListOwnBookings(c *gin.Context) {
	bs, err := h.svc.ListOwnBookings(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	response.OK(c, http.StatusOK, "Bookings retrieved successfully", bs)
}

func (h *TraineeHandler) CancelBooking(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	err = h.svc.CancelBooking(c.Request.Context(), middleware.CurrentUserID(c), id)
	middleware.CountBooking("cancel", err == nil)
	if err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	response.OK(c, http.StatusOK, "Booking cancelled successfully", nil)
}

func (h *TraineeHandler) ListAvailableSchedules(c *gin.Context) {
	scs, err := h.svc.ListAvailableSchedules(c.Request.Context())
	if err != nil {
		response.WriteError(c, h.log, err)
		return
	}
	response.OK(c, http.StatusOK, "Available schedules retrieved successfully", scs)
}
