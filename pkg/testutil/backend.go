package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// FakeModule is a list module served by FakeBackend
type FakeModule struct {
	// Structure is the raw JSON of the structure description.
	Structure string
	Records   []map[string]any
	// PageSize is the number of records per list page; 0 means 2.
	PageSize int
}

// FakeNode is a folder or file of the fake file tree
type FakeNode struct {
	Key     string
	Name    string
	Parent  string
	Folder  bool
	DlKey   string
	Content []byte
}

// FakeBlob is a blob of the fake blob store
type FakeBlob struct {
	Key         string
	ContentType string
	Data        []byte
}

// FakeBackend is an in-process ViUR backend for tests. It serves the render
// endpoints below /<Render>/ and the dbtransfer endpoints at the root.
type FakeBackend struct {
	Server *httptest.Server

	Render   string
	Username string
	Password string
	LoginKey string
	// BackupKey guards the dbtransfer endpoints.
	BackupKey string
	// WrapAnswers wraps login answers as JSON((...)).
	WrapAnswers bool
	// MissingStatus answers unknown modules with this status instead of a
	// redirect to the admin frontend.
	MissingStatus int
	BlobPageSize  int

	mu       sync.Mutex
	loggedIn bool
	skeys    int
	modules  map[string]*FakeModule
	nodes    []FakeNode
	exports  []FakeBlob
	stored   map[string]FakeBlob
	failures map[string]int
	requests []string
}

// NewFakeBackend starts a backend that is closed when the test ends
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	b := &FakeBackend{
		Render:   "vi",
		modules:  make(map[string]*FakeModule),
		stored:   make(map[string]FakeBlob),
		failures: make(map[string]int),
	}
	b.Server = httptest.NewServer(b)
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the backend's base URL
func (b *FakeBackend) URL() string {
	return b.Server.URL
}

// AddModule registers a list module
func (b *FakeBackend) AddModule(name, structure string, records ...map[string]any) *FakeModule {
	b.mu.Lock()
	defer b.mu.Unlock()
	m := &FakeModule{Structure: structure, Records: records}
	b.modules[name] = m
	return m
}

// Records returns a copy of the records of module
func (b *FakeBackend) Records(module string) []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, ok := b.modules[module]
	if !ok {
		return nil
	}
	return append([]map[string]any(nil), m.Records...)
}

// AddNode adds a folder or file to the file tree; an empty Parent makes a root
func (b *FakeBackend) AddNode(n FakeNode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nodes = append(b.nodes, n)
}

// AddExportBlob adds a blob to the store offered by exportBlob2
func (b *FakeBackend) AddExportBlob(blob FakeBlob) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.exports = append(b.exports, blob)
}

// StoreBlob marks a blob as already present
func (b *FakeBackend) StoreBlob(blob FakeBlob) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stored[blob.Key] = blob
}

// StoredBlobs returns the blobs held by the backend, uploaded ones included
func (b *FakeBackend) StoredBlobs() map[string]FakeBlob {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]FakeBlob, len(b.stored))
	for k, v := range b.stored {
		out[k] = v
	}
	return out
}

// FailNext answers the next n requests to path with 503
func (b *FakeBackend) FailNext(path string, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[path] = n
}

// Requests returns "METHOD /path" for every request served so far
func (b *FakeBackend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

// CountRequests returns how often "METHOD /path" was requested
func (b *FakeBackend) CountRequests(request string) int {
	n := 0
	for _, r := range b.Requests() {
		if r == request {
			n++
		}
	}
	return n
}

func (b *FakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.requests = append(b.requests, r.Method+" "+r.URL.Path)
	if b.failures[r.URL.Path] > 0 {
		b.failures[r.URL.Path]--
		http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
		return
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		_ = r.ParseMultipartForm(32 << 20)
	} else {
		_ = r.ParseForm()
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case parts[0] == b.Render && len(parts) > 1:
		b.serveRender(w, r, parts[1:])
	case parts[0] == "dbtransfer" && len(parts) > 1:
		b.serveTransfer(w, r, parts[1:])
	case parts[0] == "upload":
		b.serveUpload(w, r)
	case len(parts) == 3 && parts[0] == "file" && parts[1] == "download":
		blob, ok := b.stored[parts[2]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(blob.Data)
	default:
		http.NotFound(w, r)
	}
}

func (b *FakeBackend) serveRender(w http.ResponseWriter, r *http.Request, parts []string) {
	path := strings.Join(parts, "/")
	switch path {
	case "skey":
		b.skeys++
		writeJSON(w, fmt.Sprintf("skey-%d", b.skeys))
		return
	case "user/auth_userpassword/login":
		ok := b.Username != "" && r.PostForm.Get("name") == b.Username && r.PostForm.Get("password") == b.Password
		b.answerLogin(w, r, ok)
		return
	case "user/auth_loginkey/login":
		b.answerLogin(w, r, b.LoginKey != "" && r.PostForm.Get("key") == b.LoginKey)
		return
	case "user/logout":
		b.loggedIn = false
		writeJSON(w, "OKAY")
		return
	}

	if parts[0] == "s" {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, "<html>admin</html>")
		return
	}
	if len(parts) < 2 {
		http.NotFound(w, r)
		return
	}

	module, action := parts[0], parts[1]
	switch {
	case action == "listRootNodes":
		b.serveRootNodes(w)
	case action == "list" && len(parts) == 4:
		b.serveTreeList(w, parts[2], parts[3])
	case action == "download" && len(parts) == 3:
		b.serveTreeDownload(w, r, parts[2])
	case action == "view" && len(parts) == 3 && parts[2] == "structure":
		b.serveStructure(w, r, module)
	case action == "list":
		b.serveList(w, r, module)
	case action == "add" || action == "edit":
		b.serveWrite(w, r, module, action)
	default:
		http.NotFound(w, r)
	}
}

func (b *FakeBackend) answerLogin(w http.ResponseWriter, r *http.Request, ok bool) {
	answer := "FAILURE"
	if ok && r.PostForm.Get("skey") != "" {
		answer = "OKAY"
		b.loggedIn = true
	}
	if b.WrapAnswers {
		_, _ = fmt.Fprintf(w, "JSON((%q))", answer)
		return
	}
	writeJSON(w, answer)
}

func (b *FakeBackend) serveStructure(w http.ResponseWriter, r *http.Request, module string) {
	m, ok := b.modules[module]
	if !ok {
		if b.MissingStatus != 0 {
			http.Error(w, "not found", b.MissingStatus)
			return
		}
		http.Redirect(w, r, "/"+b.Render+"/s/main.html", http.StatusFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprintf(w, `{"action":"view","structure":%s}`, m.Structure)
}

func (b *FakeBackend) serveList(w http.ResponseWriter, r *http.Request, module string) {
	m, ok := b.modules[module]
	if !ok {
		http.NotFound(w, r)
		return
	}

	var matches []map[string]any
	for _, rec := range m.Records {
		if matchesFilter(rec, r.URL.Query()) {
			matches = append(matches, rec)
		}
	}

	size := m.PageSize
	if size <= 0 {
		size = 2
	}
	if amount, err := strconv.Atoi(r.URL.Query().Get("amount")); err == nil && amount > 0 {
		size = amount
	}
	start, _ := strconv.Atoi(r.URL.Query().Get("cursor"))
	if start > len(matches) {
		start = len(matches)
	}
	end := start + size
	if end > len(matches) {
		end = len(matches)
	}

	writeJSON(w, map[string]any{
		"action":   "list",
		"skellist": append([]map[string]any{}, matches[start:end]...),
		"cursor":   strconv.Itoa(end),
	})
}

func (b *FakeBackend) serveWrite(w http.ResponseWriter, r *http.Request, module, action string) {
	m, ok := b.modules[module]
	if !ok {
		http.NotFound(w, r)
		return
	}
	if r.PostForm.Get("skey") == "" {
		writeJSON(w, map[string]any{"action": action + "Failed"})
		return
	}

	values := make(map[string]any)
	for k := range r.PostForm {
		if k != "skey" {
			values[k] = r.PostForm.Get(k)
		}
	}

	if action == "add" {
		values["key"] = fmt.Sprintf("%s-%d", module, len(m.Records)+1)
		m.Records = append(m.Records, values)
		writeJSON(w, map[string]any{"action": "addSuccess"})
		return
	}

	for i, rec := range m.Records {
		if fmt.Sprint(rec["key"]) == values["key"] {
			for k, v := range values {
				m.Records[i][k] = v
			}
			writeJSON(w, map[string]any{"action": "editSuccess"})
			return
		}
	}
	writeJSON(w, map[string]any{"action": "editFailed"})
}

func (b *FakeBackend) serveRootNodes(w http.ResponseWriter) {
	var roots []map[string]any
	for _, n := range b.nodes {
		if n.Parent == "" {
			roots = append(roots, map[string]any{"key": n.Key, "name": n.Name})
		}
	}
	writeJSON(w, roots)
}

func (b *FakeBackend) serveTreeList(w http.ResponseWriter, kind, parent string) {
	entries := []map[string]any{}
	for _, n := range b.nodes {
		if n.Parent != parent || n.Folder != (kind == "node") {
			continue
		}
		entry := map[string]any{"key": n.Key, "name": n.Name}
		if !n.Folder {
			entry["dlkey"] = n.DlKey
		}
		entries = append(entries, entry)
	}
	writeJSON(w, map[string]any{"skellist": entries})
}

func (b *FakeBackend) serveTreeDownload(w http.ResponseWriter, r *http.Request, dlkey string) {
	for _, n := range b.nodes {
		if !n.Folder && n.DlKey == dlkey {
			_, _ = w.Write(n.Content)
			return
		}
	}
	http.NotFound(w, r)
}

func (b *FakeBackend) serveTransfer(w http.ResponseWriter, r *http.Request, parts []string) {
	switch {
	case parts[0] == "exportBlob2":
		if r.PostForm.Get("key") != b.BackupKey {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		size := b.BlobPageSize
		if size <= 0 {
			size = 2
		}
		start, _ := strconv.Atoi(r.PostForm.Get("cursor"))
		if start > len(b.exports) {
			start = len(b.exports)
		}
		end := start + size
		if end > len(b.exports) {
			end = len(b.exports)
		}
		values := []map[string]any{}
		for _, blob := range b.exports[start:end] {
			values = append(values, map[string]any{"key": blob.Key, "content_type": blob.ContentType})
		}
		writeJSON(w, map[string]any{"values": values, "cursor": strconv.Itoa(end)})

	case parts[0] == "hasblob" && len(parts) == 3:
		if parts[2] != b.BackupKey {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		_, ok := b.stored[parts[1]]
		_, _ = io.WriteString(w, strconv.FormatBool(ok))

	case parts[0] == "getUploadURL":
		_, _ = io.WriteString(w, b.Server.URL+"/upload")

	default:
		http.NotFound(w, r)
	}
}

func (b *FakeBackend) serveUpload(w http.ResponseWriter, r *http.Request) {
	if r.MultipartForm == nil || r.FormValue("key") != b.BackupKey {
		writeJSON(w, map[string]any{"action": "addFailed"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, map[string]any{"action": "addFailed"})
		return
	}
	defer func() { _ = file.Close() }()
	data, _ := io.ReadAll(file)

	oldKey := r.FormValue("oldkey")
	b.stored[oldKey] = FakeBlob{Key: oldKey, ContentType: header.Header.Get("Content-Type"), Data: data}
	writeJSON(w, map[string]any{
		"action": "addSuccess",
		"values": []map[string]any{{"dlkey": "dl-" + oldKey}},
	})
}

func matchesFilter(rec map[string]any, query map[string][]string) bool {
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch k {
		case "cursor", "amount", "orderby", "skey":
			continue
		}
		if fmt.Sprint(rec[k]) != query[k][0] {
			return false
		}
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
