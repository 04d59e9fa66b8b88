package loki

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPushEvent(t *testing.T) {
	var got PushRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/loki/api/v1/push" {
			t.Errorf("path = %q", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("bad push body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	labels := map[string]string{"event_type": "user_login", "user_id": "u 1"}
	if err := PushEvent(context.Background(), srv.URL, ts, `{"hello":"world"}`, labels); err != nil {
		t.Fatalf("PushEvent: %v", err)
	}

	if len(got.Streams) != 1 {
		t.Fatalf("streams = %d, want 1", len(got.Streams))
	}
	stream := got.Streams[0]
	if stream.Stream["job"] != "registration-backend" {
		t.Errorf("job label = %q", stream.Stream["job"])
	}
	if stream.Stream["event_type"] != "user_login" {
		t.Errorf("event_type label = %q", stream.Stream["event_type"])
	}
	// Spaces are invalid in label values and must be sanitized.
	if stream.Stream["user_id"] != "u_1" {
		t.Errorf("user_id label = %q, want sanitized %q", stream.Stream["user_id"], "u_1")
	}
	if len(stream.Values) != 1 || stream.Values[0][1] != `{"hello":"world"}` {
		t.Errorf("values = %v", stream.Values)
	}
}

func TestPushEvent_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := PushEvent(context.Background(), srv.URL, time.Now(), "line", nil)
	if err == nil {
		t.Fatal("non-2xx should be an error")
	}
}

func TestPushEvent_EmptyURL(t *testing.T) {
	if err := PushEvent(context.Background(), "", time.Now(), "line", nil); err == nil {
		t.Fatal("empty base URL should be an error")
	}
}

func TestPushEventJSON_ExtractsLabels(t *testing.T) {
	var got PushRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	raw := []byte(`{"user_id":"u1","session_id":"s1","event_type":"user_login","source":"registration-backend","created_at":"2025-06-01T12:00:00Z"}`)
	if err := PushEventJSON(context.Background(), srv.URL, raw); err != nil {
		t.Fatalf("PushEventJSON: %v", err)
	}

	stream := got.Streams[0]
	if stream.Stream["event_type"] != "user_login" || stream.Stream["session_id"] != "s1" {
		t.Errorf("labels = %v", stream.Stream)
	}
	wantNS := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).UnixNano()
	if stream.Values[0][0] != jsonNumber(wantNS) {
		t.Errorf("timestamp = %s, want %d", stream.Values[0][0], wantNS)
	}
}

func TestPushEventJSON_UnparseableLine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	// Raw line still goes through with current time and default labels.
	if err := PushEventJSON(context.Background(), srv.URL, []byte("not json")); err != nil {
		t.Fatalf("PushEventJSON raw line: %v", err)
	}
}

func jsonNumber(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
