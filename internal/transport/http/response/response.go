package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gym-class-booking/internal/apperr"
)

// Body 统一响应包络：成功带 data，失败带 errorDetails
type Body struct {
	Success      bool                `json:"success"`
	StatusCode   int                 `json:"statusCode"`
	Message      string              `json:"message"`
	Data         any                 `json:"data,omitempty"`
	ErrorDetails []apperr.FieldError `json:"errorDetails,omitempty"`
}

func OK(c *gin.Context, status int, msg string, data any) {
	// 成功响应永远带 data 字段，空值序列化为 null
	if data == nil {
		data = json.RawMessage("null")
	}
	c.JSON(status, Body{Success: true, StatusCode: status, Message: msg, Data: data})
}

// Fail 构造失败包络（中间件 abort 用）
func Fail(status int, msg string) Body {
	return Body{
		Success:      false,
		StatusCode:   status,
		Message:      msg,
		ErrorDetails: []apperr.FieldError{{Field: "", Message: msg}},
	}
}

// WriteError 错误序列化的唯一出口。内部错误只落日志，
// 响应里不带原因（堆栈 / SQL 一律不外泄）。
func WriteError(c *gin.Context, log *zap.Logger, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		status := ae.Status()
		msg := ae.Error()
		details := ae.Details
		if ae.Kind == apperr.KindInternal {
			log.Error("request failed",
				zap.String("path", c.FullPath()),
				zap.String("rid", c.GetString("rid")),
				zap.String("msg", msg),
				zap.Error(ae.Err),
			)
			msg = "Internal server error"
			details = nil
		}
		if len(details) == 0 {
			details = []apperr.FieldError{{Field: "", Message: msg}}
		}
		c.JSON(status, Body{
			Success:      false,
			StatusCode:   status,
			Message:      msg,
			ErrorDetails: details,
		})
		return
	}

	// 未分类错误一律 500
	log.Error("unhandled error",
		zap.String("path", c.FullPath()),
		zap.String("rid", c.GetString("rid")),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, Fail(http.StatusInternalServerError, "Internal server error"))
}
