package handlers

import (
	"errors"
	"net/http"

	service "github.com/tbakken/delelager/internal/service"
)

// ReportHandler serves the full-inventory valuation report.
func ReportHandler(w http.ResponseWriter, r *http.Request) {
	username := r.Header.Get(usernameHeader)
	if username == "" {
		errorJSON(w, http.StatusBadRequest, "Username is required")
		return
	}

	report, err := inventorySvc.Report(r.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUsernameRequired) {
			errorJSON(w, http.StatusBadRequest, "Username is required")
			return
		}
		internalError(w, r, err, "building report failed")
		return
	}
	_ = writeJSON(w, http.StatusOK, report)
}
