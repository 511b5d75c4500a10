package handlers

import (
	"net/http"
	"strings"
)

// ClientLogHandler ingests a structured log record forwarded by the
// presentation layer. Fire and forget: malformed bodies get a 400, everything
// else is logged and acknowledged.
func ClientLogHandler(w http.ResponseWriter, r *http.Request) {
	var record map[string]any
	if err := readJSON(w, r, &record); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	logger.Info().
		Fields(record).
		Str("client_ip", clientIP(r)).
		Str("user_agent", r.Header.Get("User-Agent")).
		Msg("frontend log received")

	w.WriteHeader(http.StatusOK)
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
