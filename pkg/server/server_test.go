package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/bastiangx/wordfix/pkg/fix"
	"github.com/bastiangx/wordfix/pkg/rules"
	"github.com/vmihailenco/msgpack/v5"
)

func parseRules(t *testing.T, text string) *rules.Set {
	t.Helper()
	set, err := rules.Loader{}.Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("parse rules: %v", err)
	}
	return set
}

// encodeRequests writes each request as one msgpack value.
func encodeRequests(t *testing.T, requests ...any) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	for _, req := range requests {
		if err := enc.Encode(req); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	return &buf
}

// decodeResponses reads every response map written by the server.
func decodeResponses(t *testing.T, out *bytes.Buffer) []map[string]any {
	t.Helper()
	dec := msgpack.NewDecoder(out)
	var responses []map[string]any
	for {
		var resp map[string]any
		if err := dec.Decode(&resp); err != nil {
			if errors.Is(err, io.EOF) {
				return responses
			}
			t.Fatalf("decode response: %v", err)
		}
		responses = append(responses, resp)
	}
}

func runServer(t *testing.T, load Loader, opts Options, requests ...any) []map[string]any {
	t.Helper()
	in := encodeRequests(t, requests...)
	var out bytes.Buffer
	s, err := NewServer(load, opts, in, &out)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return decodeResponses(t, &out)
}

func asInt(v any) int64 {
	switch n := v.(type) {
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	}
	return -1
}

func TestServerFixRequests(t *testing.T) {
	set := parseRules(t, "be cuz\tbecause\nu\tyou\n")
	load := func() (*rules.Set, error) { return set, nil }

	responses := runServer(t, load, Options{Mode: fix.ModeLongest},
		Request{ID: "1", Text: "i did it be cuz of u"},
		Request{ID: "2", Action: ActionFix, Text: "nothing here"},
	)
	if len(responses) != 3 {
		t.Fatalf("got %d responses, want 3", len(responses))
	}

	ready := responses[0]
	if ready["status"] != "ready" {
		t.Errorf("first response status = %v, want ready", ready["status"])
	}
	if asInt(ready["rules"]) != 2 || asInt(ready["window"]) != 3 {
		t.Errorf("ready rules/window = %v/%v, want 2/3", ready["rules"], ready["window"])
	}

	tests := []struct {
		description string
		resp        map[string]any
		id          string
		text        string
		changed     bool
	}{
		{"rules applied", responses[1], "1", "i did it because of you", true},
		{"no rule matches", responses[2], "2", "nothing here", false},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if tt.resp["id"] != tt.id {
				t.Errorf("id = %v, want %s", tt.resp["id"], tt.id)
			}
			if tt.resp["t"] != tt.text {
				t.Errorf("text = %q, want %q", tt.resp["t"], tt.text)
			}
			if tt.resp["c"] != tt.changed {
				t.Errorf("changed = %v, want %v", tt.resp["c"], tt.changed)
			}
		})
	}
}

func TestServerErrors(t *testing.T) {
	set := parseRules(t, "u\tyou\n")
	load := func() (*rules.Set, error) { return set, nil }

	responses := runServer(t, load, Options{MaxTextBytes: 4},
		Request{ID: "long", Text: "u u u u"},
		Request{ID: "odd", Action: "dance"},
		map[string]any{"id": 42, "t": []int{1}},
		Request{ID: "h", Action: ActionHealth},
	)
	if len(responses) != 5 {
		t.Fatalf("got %d responses, want 5", len(responses))
	}

	tests := []struct {
		description string
		resp        map[string]any
		code        int64
	}{
		{"text over limit", responses[1], 413},
		{"unknown action", responses[2], 400},
		{"malformed request", responses[3], 400},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if asInt(tt.resp["c"]) != tt.code {
				t.Errorf("code = %v, want %d", tt.resp["c"], tt.code)
			}
			if msg, _ := tt.resp["e"].(string); msg == "" {
				t.Error("expected an error message")
			}
		})
	}

	if responses[4]["status"] != "ok" {
		t.Errorf("health status = %v, want ok", responses[4]["status"])
	}
}

func TestServerReload(t *testing.T) {
	tables := []string{"u\tyou\n", "broken line without tab\n", "u\tyou\nr\tare\n"}
	calls := 0
	load := func() (*rules.Set, error) {
		text := tables[calls]
		calls++
		return rules.Loader{}.Parse(strings.NewReader(text))
	}

	responses := runServer(t, load, Options{Mode: fix.ModeWindow},
		Request{ID: "a", Text: "r"},
		Request{ID: "bad", Action: ActionReload},
		Request{ID: "b", Text: "r"},
		Request{ID: "good", Action: ActionReload},
		Request{ID: "c", Text: "r"},
		Request{ID: "s", Action: ActionStats},
	)
	if len(responses) != 7 {
		t.Fatalf("got %d responses, want 7", len(responses))
	}

	if got := responses[1]["t"]; got != "r" {
		t.Errorf("before reload = %q, want %q", got, "r")
	}
	if responses[2]["status"] != "error" || responses[2]["error"] == nil {
		t.Errorf("broken reload = %v, want status error with message", responses[2])
	}
	if got := responses[3]["t"]; got != "r" {
		t.Errorf("after failed reload = %q, want previous rules to stay active", got)
	}
	if responses[4]["status"] != "ok" {
		t.Errorf("reload status = %v, want ok", responses[4]["status"])
	}
	if got := responses[5]["t"]; got != "are" {
		t.Errorf("after reload = %q, want %q", got, "are")
	}
	if asInt(responses[6]["rules"]) != 2 || responses[6]["mode"] != "window" {
		t.Errorf("stats = %v, want 2 rules in window mode", responses[6])
	}
}

func TestNewServerFailsOnBrokenRules(t *testing.T) {
	load := func() (*rules.Set, error) {
		return rules.Loader{}.Parse(strings.NewReader("no separator\n"))
	}
	_, err := NewServer(load, Options{}, &bytes.Buffer{}, io.Discard)
	var parseErr *rules.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("NewServer error = %v, want *rules.ParseError", err)
	}
}

func TestServerNormalizesInput(t *testing.T) {
	set := parseRules(t, "café\tcoffee\n")
	load := func() (*rules.Set, error) { return set, nil }
	s, err := NewServer(load, Options{Normalize: strings.ToLower}, &bytes.Buffer{}, io.Discard)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	tests := []struct {
		description string
		input       string
		want        string
		changed     bool
	}{
		{"rule applied after normalizing", "CAFÉ now", "coffee now", true},
		{"normalization alone", "TEA now", "tea now", false},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got, changed := s.Fix(tt.input)
			if got != tt.want || changed != tt.changed {
				t.Errorf("Fix(%q) = %q, %v; want %q, %v", tt.input, got, changed, tt.want, tt.changed)
			}
		})
	}
}
