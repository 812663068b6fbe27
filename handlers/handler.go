package handlers

import (
	"encoding/json"
	"net/http"

	"workhub-project/tasks-service/errs"
	"workhub-project/tasks-service/logging"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps the error taxonomy onto HTTP statuses and reports the
// stable error key to the caller.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errs.IsNotFound(err):
		status = http.StatusNotFound
	case errs.IsValidation(err):
		status = http.StatusBadRequest
		key := errs.KeyOf(err)
		if key == "dependency.exists" || key == "dependency.cycle" {
			status = http.StatusConflict
		}
	case errs.IsForbidden(err):
		status = http.StatusForbidden
	default:
		logging.Logger.Errorf("Event ID: INTERNAL_ERROR, Description: %v", err)
	}

	writeJSON(w, status, map[string]string{"error": errs.KeyOf(err)})
}
