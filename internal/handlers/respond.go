package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"rates-service/internal/services"

	"github.com/samber/mo"
	"go.uber.org/zap"
)

type valueResponse struct {
	Value any `json:"value"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeResult maps a service outcome onto HTTP: a cache store failure is a
// 500, bad input a 400, a missing entry a 404 and any upstream failure a 502.
func writeResult[T any](w http.ResponseWriter, logger *zap.Logger, res mo.Result[T], err error) {
	if err != nil {
		logger.Error("cache store unavailable", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "cache unavailable")
		return
	}

	value, resErr := res.Get()
	switch {
	case resErr == nil:
		writeJSON(w, http.StatusOK, valueResponse{Value: value})
	case errors.Is(resErr, services.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, resErr.Error())
	case errors.Is(resErr, services.ErrNotFound):
		writeError(w, http.StatusNotFound, resErr.Error())
	default:
		writeError(w, http.StatusBadGateway, resErr.Error())
	}
}
