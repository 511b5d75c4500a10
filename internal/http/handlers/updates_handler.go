package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	sse "github.com/tbakken/delelager/internal/sse"
)

// UpdatesHandler serves the SSE stream. Each subscriber receives one snapshot
// event with the current item count on connect, then an update event after
// every mutation. The connection stays open until the client goes away.
func UpdatesHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		errorJSON(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	count, err := inventorySvc.Count(r.Context())
	if err != nil {
		internalError(w, r, err, "sse initial count failed")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	if err := writeEvent(w, sse.Event{Type: "update", Count: count}); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-sub.Events():
			if err := writeEvent(w, ev); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, ev sse.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
