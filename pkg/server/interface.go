/*
Package server implements msgpack IPC for spelling checks.

Clients write msgpack maps to the server's input (stdin) and read msgpack
maps from its output (stdout). Requests are handled one at a time, in order.
The first message the server writes is

	{"status": "ready"}

A check request carries an ID, an optional action and the word:

	{"id": "req_001", "a": "check", "w": "speling"}

and is answered with the verdict, the corrected spelling, up to five
suggestions and the time taken in microseconds:

	{"id": "req_001", "v": "misspelled", "o": "speling", "c": "spelling", "s": ["spelling", "spilling"], "t": 87}

Custom dictionary management uses the same shape:

	{"id": "req_002", "a": "add", "w": "kubernetes"}
	{"id": "req_003", "a": "remove", "w": "kubernetes"}
	{"id": "req_004", "a": "health"}

Failures are reported with an error message and an HTTP-like code:

	{"id": "req_005", "e": "empty input", "c": 400}

EOF on the input ends the loop without error.
*/
package server

// Actions accepted in CheckRequest.Action. An empty action means ActionCheck.
const (
	ActionCheck  = "check"
	ActionAdd    = "add"
	ActionRemove = "remove"
	ActionHealth = "health"
)

// CheckRequest is a single IPC request
type CheckRequest struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"a,omitempty"`
	Word   string `msgpack:"w"`
}

// CheckResponse carries a verdict
type CheckResponse struct {
	ID          string   `msgpack:"id"`
	Verdict     string   `msgpack:"v"`
	Original    string   `msgpack:"o"`
	Corrected   string   `msgpack:"c"`
	Suggestions []string `msgpack:"s"`
	TimeTaken   int64    `msgpack:"t"`
}

// StatusResponse answers health and dictionary management requests
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
