// internal/webutil/request.go
package webutil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"hanyu_keep/internal/model"
)

// DecodeJSONBody はリクエストボディをデコードします
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		slog.Debug("Error decoding JSON body", "error", err)
		return model.ErrInvalidInput
	}
	return nil
}
