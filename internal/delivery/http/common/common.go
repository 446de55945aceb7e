package http_common

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/humanbelnik/filmorate/internal/model"
)

// DateLayout is the wire format of release dates and birthdays.
const DateLayout = "2006-01-02"

// RequestIDKey is the gin context key holding the current request id.
const RequestIDKey = "request_id"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// RespondError writes err using the status of its domain kind.
// Unknown errors are logged and answered with 500 without details.
func RespondError(ctx *gin.Context, logger *slog.Logger, action string, err error) {
	status, title := classify(err)

	if status == http.StatusInternalServerError {
		logger.Error("failed to "+action,
			slog.String("error", err.Error()),
			slog.String("request_id", ctx.GetString(RequestIDKey)),
		)
		ctx.JSON(status, ErrorResponse{
			Error: title,
			Code:  status,
		})
		return
	}

	logger.Warn("rejected request",
		slog.String("action", action),
		slog.String("error", err.Error()),
	)
	ctx.JSON(status, ErrorResponse{
		Error:   title,
		Message: err.Error(),
		Code:    status,
	})
}

// RespondBadRequest is used for bodies and parameters that cannot be decoded at all.
func RespondBadRequest(ctx *gin.Context, logger *slog.Logger, title string, err error) {
	logger.Warn(title, slog.String("error", err.Error()))
	ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   title,
		Message: err.Error(),
		Code:    http.StatusBadRequest,
	})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest, "Validation failed"
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, model.ErrAlreadyExists):
		return http.StatusConflict, "Already exists"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// ParamID reads a positive integer path parameter.
func ParamID(ctx *gin.Context, name string) (int64, error) {
	raw := ctx.Param(name)
	ID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ID <= 0 {
		return 0, errors.New(name + " must be a positive integer, got " + strconv.Quote(raw))
	}
	return ID, nil
}

// ParamIntID is ParamID for the catalog's int keys.
func ParamIntID(ctx *gin.Context, name string) (int, error) {
	ID, err := ParamID(ctx, name)
	if err != nil {
		return 0, err
	}
	return int(ID), nil
}
