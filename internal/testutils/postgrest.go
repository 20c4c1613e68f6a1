package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// FakePostgREST is an in-process stand-in for a PostgREST endpoint. It keeps
// rows per table, assigns ids and timestamps, and understands id=eq.N filters.
type FakePostgREST struct {
	Server *httptest.Server

	mu       sync.Mutex
	tables   map[string]map[int64]map[string]interface{}
	nextID   map[string]int64
	failWith int
	requests int
}

// NewFakePostgREST starts the fake and closes it when the test ends
func NewFakePostgREST(t *testing.T) *FakePostgREST {
	t.Helper()

	f := &FakePostgREST{
		tables: make(map[string]map[int64]map[string]interface{}),
		nextID: make(map[string]int64),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the base URL to configure clients with
func (f *FakePostgREST) URL() string {
	return f.Server.URL
}

// FailWith makes every following request answer with status. Zero restores
// normal behavior.
func (f *FakePostgREST) FailWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWith = status
}

// Requests reports how many requests reached the fake
func (f *FakePostgREST) Requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

func (f *FakePostgREST) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++

	if f.failWith != 0 {
		http.Error(w, `{"message":"injected failure"}`, f.failWith)
		return
	}
	if r.Header.Get("apikey") == "" {
		http.Error(w, `{"message":"missing apikey"}`, http.StatusUnauthorized)
		return
	}

	table, ok := strings.CutPrefix(r.URL.Path, "/rest/v1/")
	if !ok || table == "" {
		http.NotFound(w, r)
		return
	}
	rows := f.tables[table]
	if rows == nil {
		rows = make(map[int64]map[string]interface{})
		f.tables[table] = rows
	}

	id, hasID, err := idFilter(r)
	if err != nil {
		http.Error(w, `{"message":"bad filter"}`, http.StatusBadRequest)
		return
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)

	switch r.Method {
	case http.MethodGet:
		writeRows(w, http.StatusOK, matching(rows, id, hasID))

	case http.MethodPost:
		var row map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
			http.Error(w, `{"message":"bad body"}`, http.StatusBadRequest)
			return
		}
		f.nextID[table]++
		row["id"] = f.nextID[table]
		row["created_at"] = now
		row["updated_at"] = now
		rows[f.nextID[table]] = row
		writeRows(w, http.StatusCreated, []map[string]interface{}{row})

	case http.MethodPatch:
		var patch map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, `{"message":"bad body"}`, http.StatusBadRequest)
			return
		}
		updated := matching(rows, id, hasID)
		for _, row := range updated {
			for k, v := range patch {
				row[k] = v
			}
			row["updated_at"] = now
		}
		writeRows(w, http.StatusOK, updated)

	case http.MethodDelete:
		deleted := matching(rows, id, hasID)
		for _, row := range deleted {
			delete(rows, row["id"].(int64))
		}
		if r.Header.Get("Prefer") == "return=representation" {
			writeRows(w, http.StatusOK, deleted)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, `{"message":"method not allowed"}`, http.StatusMethodNotAllowed)
	}
}

func idFilter(r *http.Request) (int64, bool, error) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		return 0, false, nil
	}
	v, ok := strings.CutPrefix(raw, "eq.")
	if !ok {
		return 0, false, strconv.ErrSyntax
	}
	id, err := strconv.ParseInt(v, 10, 64)
	return id, true, err
}

func matching(rows map[int64]map[string]interface{}, id int64, hasID bool) []map[string]interface{} {
	out := make([]map[string]interface{}, 0)
	if hasID {
		if row, ok := rows[id]; ok {
			out = append(out, row)
		}
		return out
	}
	ids := make([]int64, 0, len(rows))
	for k := range rows {
		ids = append(ids, k)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, k := range ids {
		out = append(out, rows[k])
	}
	return out
}

func writeRows(w http.ResponseWriter, status int, rows []map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(rows)
}
