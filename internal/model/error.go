package model

import "errors"

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("resource conflict") // 楽観ロックの版数不一致用
	ErrStaleSession   = errors.New("stale review session")
)

// ErrorDetail はクライアントに返すエラーの詳細情報
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError はエラーコード・メッセージ・原因エラーを束ねるカスタムエラー型です。
// webutil.HandleError がこの型を解釈してHTTPレスポンスに変換します。
type AppError struct {
	Detail ErrorDetail
	err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{
			Code:    code,
			Message: message,
			Field:   field,
		},
		err: err,
	}
}

func (e *AppError) Error() string {
	if e.err != nil {
		return e.Detail.Message + ": " + e.err.Error()
	}
	return e.Detail.Message
}

func (e *AppError) Unwrap() error {
	return e.err
}
