/*
Package server implements msgpack IPC for word finding services.

The server reads msgpack encoded requests from stdin and writes one msgpack
encoded response per request to stdout. Requests are handled synchronously, in
order, and responses carry the time the search took.

# IPC

Every message carries an ID chosen by the client and echoed back. A find
request holds the letters to search with:

	{"id": "req_001", "q": "tacs"}

The server answers with every word those letters spell, grouped by length,
longest first, with the total count and the search time in microseconds:

	{"id": "req_001", "g": [{"n": 4, "w": ["cast", "cats", "scat"]}, {"n": 3, "w": ["act", "cat"]}], "c": 5, "t": 212}

Other actions are selected with the "a" field:

	{"id": "req_002", "a": "stats"}
	{"id": "req_003", "a": "health"}

Failures are reported with an error message and an HTTP-like code. 400 means
the request itself was rejected (too long, unknown action, undecodable) and
503 means the dictionary could not be loaded:

	{"id": "req_004", "e": "dictionary source unavailable: ...", "code": 503}

On start the server writes {"status": "ready"}. It exits cleanly when stdin
is closed.
*/
package server

// Actions understood by the server.
const (
	ActionFind   = "find"
	ActionStats  = "stats"
	ActionHealth = "health"
)

// FindRequest - find or control request
type FindRequest struct {
	ID     string `msgpack:"id"`
	Query  string `msgpack:"q"`
	Action string `msgpack:"a,omitempty"` // "find" (default), "stats", "health"
}

// WordGroup - words of a single length
type WordGroup struct {
	Length int      `msgpack:"n"`
	Words  []string `msgpack:"w"`
}

// FindResponse - find response
type FindResponse struct {
	ID        string      `msgpack:"id"`
	Groups    []WordGroup `msgpack:"g"`
	Count     int         `msgpack:"c"`
	TimeTaken int64       `msgpack:"t"`
}

// StatsResponse - cache and dictionary counters
type StatsResponse struct {
	ID    string         `msgpack:"id"`
	Stats map[string]int `msgpack:"s"`
}

// StatusResponse - ready and health signals
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// FindError holds basic error information for failed requests
type FindError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"code"`
}
