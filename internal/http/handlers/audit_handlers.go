package handlers

import (
	"net/http"

	service "github.com/tbakken/delelager/internal/service"
)

// AuditLogsHandler serves the paginated audit log, newest first.
func AuditLogsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parsePositiveInt(q.Get("page"), 1)
	itemsPerPage := parsePositiveInt(q.Get("itemsPerPage"), 25)

	result, err := inventorySvc.AuditLog(r.Context(), page, itemsPerPage)
	if err != nil {
		internalError(w, r, err, "listing audit log failed")
		return
	}

	if result.Logs == nil {
		result.Logs = []service.AuditLogEntry{}
	}
	_ = writeJSON(w, http.StatusOK, AuditLogPage{
		Logs:       result.Logs,
		Pagination: newPagination(result.Page, result.ItemsPerPage, result.TotalItems),
	})
}
