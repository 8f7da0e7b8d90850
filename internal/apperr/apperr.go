package apperr

import "errors"

// 业务错误码（直接基于 HTTP 语义）
const (
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeServerError  = 500
)

// Error 统一错误对象：Code 决定 HTTP 状态，Msg 返回给客户端，Err 仅落日志
type Error struct {
	Code int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "server error"
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) error   { return &Error{Code: CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &Error{Code: CodeUnauthorized, Msg: msg} }
func NotFound(msg string) error     { return &Error{Code: CodeNotFound, Msg: msg} }
func Conflict(msg string) error     { return &Error{Code: CodeConflict, Msg: msg} }
func Internal(msg string, err error) error {
	return &Error{Code: CodeServerError, Msg: msg, Err: err}
}

// CodeOf 取错误码；未分类错误一律按 500
func CodeOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeServerError
}
