package utils

import (
	"net/http"

	"github.com/goccy/go-json"
)

// errorBody mirrors the success envelope for failed requests.
type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// WriteJSON encodes data before writing the status line, so an encoding
// failure still produces a clean 500.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"failed to encode response"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, errorBody{Error: message})
}
