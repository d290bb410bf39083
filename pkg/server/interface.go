/*
Package server implements msgpack IPC for text correction.

Clients write a stream of msgpack maps to stdin and read one response map per
request from stdout. Every request carries an ID that is echoed back.

Correct one field of text (the action defaults to "fix"):

	{"id": "req_001", "t": "i did it be cuz of u"}

The server answers with the corrected text, whether it changed, and the time
taken in microseconds:

	{"id": "req_001", "t": "i did it because of you", "c": true, "tm": 12}

Rule management:

	{"id": "r1", "a": "reload"}
	{"id": "r2", "a": "stats"}
	{"id": "r3", "a": "health"}

A reload reads the rule file again and swaps the whole rule trie in one step;
requests already running finish on the previous rules. If the new file does
not load, the previous rules stay active and the response carries the error.
*/
package server

// Request is any client message.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"a,omitempty"`
	Text   string `msgpack:"t,omitempty"`
}

const (
	ActionFix    = "fix"
	ActionReload = "reload"
	ActionStats  = "stats"
	ActionHealth = "health"
)

// FixResponse carries corrected text.
type FixResponse struct {
	ID        string `msgpack:"id"`
	Text      string `msgpack:"t"`
	Changed   bool   `msgpack:"c"`
	TimeTaken int64  `msgpack:"tm"`
}

// StatusResponse answers reload, stats and health requests, and is sent
// once with status "ready" when the server starts.
type StatusResponse struct {
	ID       string `msgpack:"id,omitempty"`
	Status   string `msgpack:"status"`
	Error    string `msgpack:"error,omitempty"`
	Mode     string `msgpack:"mode,omitempty"`
	Rules    int    `msgpack:"rules,omitempty"`
	Window   int    `msgpack:"window,omitempty"`
	Unstable int    `msgpack:"unstable,omitempty"`
	Requests int    `msgpack:"requests,omitempty"`
}

// ErrorResponse holds basic error information for a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
