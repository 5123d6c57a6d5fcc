package apperr

import "net/http"

// Kind 业务错误分类，终端 writer 统一映射到 HTTP 状态码
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict // 业务规则冲突（重复邮箱 / 重复预约 / 时段冲突）
	KindCapacity // 容量超限（每日 5 节 / 每节 10 人）
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Msg     string
	Details []FieldError
	Err     error // 内部原因，只落日志，不出响应
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "application error"
}

func (e *Error) Unwrap() error { return e.Err }

// Status Conflict/Capacity 按规范同为 400
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindConflict, KindCapacity:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(details []FieldError) error {
	return &Error{Kind: KindValidation, Msg: "Validation error occurred", Details: details}
}
func Unauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &Error{Kind: KindForbidden, Msg: msg} }
func NotFound(msg string) error     { return &Error{Kind: KindNotFound, Msg: msg} }
func Conflict(msg string) error     { return &Error{Kind: KindConflict, Msg: msg} }
func Capacity(msg string) error     { return &Error{Kind: KindCapacity, Msg: msg} }
func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}
