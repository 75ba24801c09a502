package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// envelope is the response shape every endpoint returns.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Token   string      `json:"token,omitempty"`
	Result  interface{} `json:"result,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

// serverError logs the cause for operators and hands the client only the
// generic message.
func serverError(w http.ResponseWriter, log *zap.Logger, message string, err error) {
	log.Error(message, zap.Error(err))
	fail(w, http.StatusInternalServerError, message)
}
