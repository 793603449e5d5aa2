package transport

import (
	"encoding/json"
	"net/http"

	"bookstore-be/internal/apperror"
	"bookstore-be/internal/i18n"
	"bookstore-be/internal/logger"

	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error     string            `json:"error"`
	Code      string            `json:"code"`
	Fields    map[string]string `json:"fields,omitempty"`
	Details   map[string]any    `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

var ErrInvalidBody = apperror.Validation("invalid request body")

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Warn("failed to encode response", zap.Error(err))
	}
}

// WriteMessage writes {"message": ...} translated for the request language.
func WriteMessage(w http.ResponseWriter, r *http.Request, status int, key string, args ...any) {
	WriteJSON(w, status, MessageResponse{Message: i18n.T(r.Context(), key, args...)})
}

// StatusFor maps an error kind to an HTTP status code.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation, apperror.KindProvider:
		return http.StatusBadRequest
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized
	case apperror.KindForbidden:
		return http.StatusForbidden
	case apperror.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err. Errors that are not *apperror.Error are logged and
// hidden behind a generic 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	resp := ErrorResponse{RequestID: logger.RequestIDFrom(ctx)}

	appErr, ok := apperror.As(err)
	if !ok {
		logger.FromCtx(ctx).Error("unhandled error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		resp.Error = i18n.T(ctx, "internal server error")
		resp.Code = apperror.KindInternal.String()
		WriteJSON(w, http.StatusInternalServerError, resp)
		return
	}

	resp.Error = i18n.T(ctx, appErr.Key, appErr.Args...)
	resp.Code = appErr.Kind.String()
	resp.Details = appErr.Details

	fields := append([]*apperror.Error{}, appErr.Fields...)
	if appErr.Field != "" {
		fields = append(fields, appErr)
	}
	if len(fields) > 0 {
		resp.Fields = make(map[string]string, len(fields))
		for _, f := range fields {
			if _, seen := resp.Fields[f.Field]; !seen {
				resp.Fields[f.Field] = i18n.T(ctx, f.Key, f.Args...)
			}
		}
	}

	WriteJSON(w, StatusFor(appErr.Kind), resp)
}

// DecodeJSON decodes the request body into v.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return ErrInvalidBody
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return ErrInvalidBody
	}
	return nil
}
