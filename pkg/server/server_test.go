package server

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/bastiangx/wordfind/pkg/config"
	"github.com/bastiangx/wordfind/pkg/dictionary"
	"github.com/bastiangx/wordfind/pkg/finder"
	"github.com/vmihailenco/msgpack/v5"
)

func newTestFinder() *finder.Finder {
	src := dictionary.ReaderSource{Reader: strings.NewReader("cat\nact\nat\ntac\ncast\ncats\nscat\n")}
	return finder.New(dictionary.NewLoader(src, dictionary.MinWordLength))
}

// serve runs the server over the encoded messages and returns a decoder over its output
func serve(t *testing.T, f finder.IFinder, cfg *config.Config, messages ...any) *msgpack.Decoder {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, m := range messages {
		if err := enc.Encode(m); err != nil {
			t.Fatalf("encoding request: %v", err)
		}
	}
	if err := NewServerWithIO(f, cfg, &in, &out).Start(); err != nil {
		t.Fatalf("server returned error: %v", err)
	}

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	if err := dec.Decode(&ready); err != nil || ready.Status != "ready" {
		t.Fatalf("expected ready signal, got %+v (%v)", ready, err)
	}
	return dec
}

func TestFindRequest(t *testing.T) {
	dec := serve(t, newTestFinder(), nil, FindRequest{ID: "req_001", Query: "tacs"})

	var resp FindResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	expected := []WordGroup{
		{Length: 4, Words: []string{"cast", "cats", "scat"}},
		{Length: 3, Words: []string{"act", "cat", "tac"}},
	}
	if resp.ID != "req_001" {
		t.Errorf("expected id req_001, got %q", resp.ID)
	}
	if !reflect.DeepEqual(resp.Groups, expected) {
		t.Errorf("expected %v, got %v", expected, resp.Groups)
	}
	if resp.Count != 6 {
		t.Errorf("expected count 6, got %d", resp.Count)
	}
	if resp.TimeTaken < 0 {
		t.Errorf("negative time taken: %d", resp.TimeTaken)
	}
}

func TestEmptyQuery(t *testing.T) {
	dec := serve(t, newTestFinder(), nil, FindRequest{ID: "e", Action: ActionFind})

	var resp FindResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 0 || len(resp.Groups) != 0 {
		t.Errorf("expected empty response, got %+v", resp)
	}
}

func TestRequestsInOrder(t *testing.T) {
	dec := serve(t, newTestFinder(), nil,
		FindRequest{ID: "1", Query: "cat"},
		FindRequest{ID: "2", Action: ActionHealth},
		FindRequest{ID: "3", Action: ActionStats},
		FindRequest{ID: "4", Action: "explode"},
	)

	var find FindResponse
	if err := dec.Decode(&find); err != nil || find.ID != "1" || find.Count != 3 {
		t.Fatalf("unexpected find response %+v (%v)", find, err)
	}

	var health StatusResponse
	if err := dec.Decode(&health); err != nil || health.ID != "2" || health.Status != "ok" {
		t.Fatalf("unexpected health response %+v (%v)", health, err)
	}

	var stats StatsResponse
	if err := dec.Decode(&stats); err != nil || stats.ID != "3" {
		t.Fatalf("unexpected stats response %+v (%v)", stats, err)
	}
	if stats.Stats["dictLoaded"] != 1 || stats.Stats["totalWords"] != 6 {
		t.Errorf("unexpected stats: %v", stats.Stats)
	}

	var unknown FindError
	if err := dec.Decode(&unknown); err != nil || unknown.ID != "4" || unknown.Code != 400 {
		t.Fatalf("unexpected error response %+v (%v)", unknown, err)
	}
}

func TestQueryTooLong(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxQueryLen = 5

	dec := serve(t, newTestFinder(), cfg, FindRequest{ID: "long", Query: "abcdefgh"})

	var resp FindError
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Code != 400 || resp.ID != "long" {
		t.Errorf("expected 400 for long query, got %+v", resp)
	}
}

func TestDictionaryUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	f := finder.New(dictionary.NewLoader(dictionary.FileSource{Path: path}, 3))

	dec := serve(t, f, nil, FindRequest{ID: "x", Query: "cat"})

	var resp FindError
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Code != 503 {
		t.Errorf("expected 503, got %+v", resp)
	}
	if !strings.Contains(resp.Error, "dictionary source unavailable") {
		t.Errorf("unexpected error message %q", resp.Error)
	}
}

// a value of the wrong shape gets an error and the next request still works
func TestMalformedRequest(t *testing.T) {
	dec := serve(t, newTestFinder(), nil,
		42,
		FindRequest{ID: "ok", Query: "cat"},
	)

	var bad FindError
	if err := dec.Decode(&bad); err != nil || bad.Code != 400 {
		t.Fatalf("expected 400 error, got %+v (%v)", bad, err)
	}
	var good FindResponse
	if err := dec.Decode(&good); err != nil || good.ID != "ok" || good.Count != 3 {
		t.Fatalf("unexpected response after malformed request %+v (%v)", good, err)
	}
}

// errors and results use distinct keys for their numbers
func TestErrorCodeKey(t *testing.T) {
	dec := serve(t, newTestFinder(), nil,
		FindRequest{ID: "bad", Action: "explode"},
		FindRequest{ID: "good", Query: "cat"},
	)

	var errMsg map[string]any
	if err := dec.Decode(&errMsg); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if _, ok := errMsg["code"]; !ok {
		t.Errorf("error response has no code key: %v", errMsg)
	}
	if _, ok := errMsg["c"]; ok {
		t.Errorf("error response should not use the count key: %v", errMsg)
	}

	var okMsg map[string]any
	if err := dec.Decode(&okMsg); err != nil {
		t.Fatalf("decoding find response: %v", err)
	}
	if _, ok := okMsg["c"]; !ok {
		t.Errorf("find response has no count key: %v", okMsg)
	}
	if _, ok := okMsg["code"]; ok {
		t.Errorf("find response should not carry an error code: %v", okMsg)
	}
}
