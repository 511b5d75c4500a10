package handlers_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sse "github.com/tbakken/delelager/internal/sse"
)

// readEvent pulls the next data frame off the stream, skipping blank
// separator lines.
func readEvent(t *testing.T, scanner *bufio.Scanner) sse.Event {
	t.Helper()
	deadline := time.After(3 * time.Second)
	lines := make(chan string)
	go func() {
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			lines <- line
			return
		}
		close(lines)
	}()

	select {
	case <-deadline:
		t.Fatal("timed out waiting for an event")
	case line, ok := <-lines:
		if !ok {
			t.Fatalf("stream closed early: %v", scanner.Err())
		}
		payload, found := strings.CutPrefix(line, "data: ")
		if !found {
			t.Fatalf("unexpected stream line: %q", line)
		}
		var ev sse.Event
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			t.Fatalf("bad event payload %q: %v", payload, err)
		}
		return ev
	}
	return sse.Event{}
}

func TestUpdatesStream(t *testing.T) {
	env := newTestEnv(t)
	server := httptest.NewServer(env.router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/updates")
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected text/event-stream, got %q", ct)
	}

	scanner := bufio.NewScanner(resp.Body)

	initial := readEvent(t, scanner)
	if initial.Type != "update" || initial.Count != 0 {
		t.Errorf("expected initial count 0, got %+v", initial)
	}

	body, _ := json.Marshal(itemBody("A1", 10))
	req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/inventory", bytes.NewReader(body))
	req.Header.Set("x-username", "alice")
	req.Header.Set("Content-Type", "application/json")
	createResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	createResp.Body.Close()
	if createResp.StatusCode != http.StatusOK {
		t.Fatalf("create returned %d", createResp.StatusCode)
	}

	next := readEvent(t, scanner)
	if next.Type != "update" || next.Count != 1 {
		t.Errorf("expected update with count 1, got %+v", next)
	}
}
