package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JonMunkholm/vtable/internal/config"
	"github.com/JonMunkholm/vtable/internal/core"
	_ "github.com/JonMunkholm/vtable/internal/core/tables"
	db "github.com/JonMunkholm/vtable/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// fakeStore keeps presets in memory with the table/name unique constraint.
type fakeStore struct {
	mu   sync.Mutex
	rows []db.LayoutPreset
}

func (f *fakeStore) CreateLayoutPreset(_ context.Context, arg db.CreateLayoutPresetParams) (db.LayoutPreset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.TableKey == arg.TableKey && r.Name == arg.Name {
			return db.LayoutPreset{}, &pgconn.PgError{Code: "23505", ConstraintName: db.PresetNameConstraint}
		}
	}
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	row := db.LayoutPreset{
		ID:          arg.ID,
		TableKey:    arg.TableKey,
		Name:        arg.Name,
		ParentWidth: arg.ParentWidth,
		Columns:     arg.Columns,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.rows = append(f.rows, row)
	return row, nil
}

func (f *fakeStore) GetLayoutPreset(_ context.Context, id pgtype.UUID) (db.LayoutPreset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return db.LayoutPreset{}, pgx.ErrNoRows
}

func (f *fakeStore) ListLayoutPresets(_ context.Context, tableKey string) ([]db.LayoutPreset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.LayoutPreset
	for _, r := range f.rows {
		if r.TableKey == tableKey {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteLayoutPreset(_ context.Context, id pgtype.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.rows {
		if r.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{RequestTimeout: 5 * time.Second},
		Layout: config.LayoutConfig{
			DefaultParentWidth: "1200px",
			PercentReserve:     10,
			PixelReserve:       100,
			MaxColumns:         50,
		},
		Selection: config.SelectionConfig{
			TTL:           time.Minute,
			MaxRows:       10,
			SweepInterval: time.Minute,
		},
		Security: config.SecurityConfig{
			RequireAPIKey: true,
			APIKeys:       []string{"test-key"},
		},
	}
}

func newTestServer(t *testing.T, store core.PresetStore) *Server {
	t.Helper()
	cfg := testConfig()
	srv := NewServer(core.NewService(cfg, store), cfg)
	t.Cleanup(func() { srv.Shutdown(context.Background()) })
	return srv
}

func do(t *testing.T, srv *Server, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/healthz", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decode[healthResponse](t, rec)
	if got.Status != "ok" || got.Tables == 0 || got.PresetsEnabled {
		t.Errorf("health = %+v", got)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing security headers")
	}
}

func TestResolveLayout(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
		wantWidths []string
		wantDiags  int
	}{
		{
			name:       "pixel parent",
			body:       `{"parentWidth":"1200px","columns":[{"key":"a","width":"200px"},{"key":"b"}]}`,
			wantStatus: http.StatusOK,
			wantWidths: []string{"200px", "1000px"},
		},
		{
			name:       "percent parent with overflow",
			body:       `{"parentWidth":"100%","columns":[{"key":"a","width":"60%"},{"key":"b","width":"60%"},{"key":"c"}]}`,
			wantStatus: http.StatusOK,
			wantWidths: []string{"45%", "45%", "10%"},
		},
		{
			name:       "numeric width and malformed width",
			body:       `{"parentWidth":"800px","columns":[{"key":"a","width":300},{"key":"b","width":"wide"}]}`,
			wantStatus: http.StatusOK,
			wantWidths: []string{"300px", "500px"},
			wantDiags:  1,
		},
		{
			name:       "bad parent width",
			body:       `{"parentWidth":"wide","columns":[{"key":"a"}]}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "LAY001",
		},
		{
			name:       "no columns",
			body:       `{"parentWidth":"100%","columns":[]}`,
			wantStatus: http.StatusOK,
			wantWidths: []string{},
		},
		{
			name:       "no columns with bad parent",
			body:       `{"parentWidth":"wide","columns":[]}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "LAY001",
		},
		{
			name:       "malformed json",
			body:       `{"columns":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "REQ001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/api/layout/resolve", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantCode != "" {
				if got := decode[ErrorResponse](t, rec); got.Code != tt.wantCode {
					t.Errorf("code = %q, want %q", got.Code, tt.wantCode)
				}
				return
			}

			got := decode[core.LayoutResult](t, rec)
			if len(got.Columns) != len(tt.wantWidths) {
				t.Fatalf("got %d columns, want %d", len(got.Columns), len(tt.wantWidths))
			}
			for i, c := range got.Columns {
				if string(c.Width) != tt.wantWidths[i] {
					t.Errorf("column %d width = %q, want %q", i, c.Width, tt.wantWidths[i])
				}
			}
			if len(got.Diagnostics) != tt.wantDiags {
				t.Errorf("diagnostics = %v, want %d", got.Diagnostics, tt.wantDiags)
			}
		})
	}
}

func TestTableLayout(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/tables/sfdc_customers/layout?width=1000px", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	got := decode[core.LayoutResult](t, rec)
	if got.TableKey != "sfdc_customers" || got.Family != "px" || got.ParentWidth != "1000px" {
		t.Errorf("result = %+v", got)
	}
	if len(got.Columns) != 5 || got.Columns[0].Width != "40px" {
		t.Errorf("columns = %+v", got.Columns)
	}

	rec = do(t, srv, http.MethodGet, "/api/tables/nope/layout", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown table status = %d, want 404", rec.Code)
	}
}

func TestListTables(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/api/tables", "")
	got := decode[map[string][]core.TableInfo](t, rec)
	for _, group := range []string{"SFDC", "NS", "Anrok"} {
		if len(got[group]) == 0 {
			t.Errorf("group %s has no tables", group)
		}
	}
}

func TestPages(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/table/sfdc_customers") {
		t.Errorf("dashboard status=%d body missing table link", rec.Code)
	}

	rec = do(t, srv, http.MethodGet, "/table/sfdc_customers?width=1000px", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("table page status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `<col data-key="select" data-width="40px"`) {
		t.Error("table page missing checkbox col width")
	}

	rec = do(t, srv, http.MethodGet, "/table/sfdc_customers?width=bogus", "", "HX-Request", "true")
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "LAY001") {
		t.Errorf("htmx error status=%d body=%q", rec.Code, rec.Body.String())
	}
}

func TestPresets_Disabled(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/api/presets/sfdc_customers", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestPresets_Lifecycle(t *testing.T) {
	srv := newTestServer(t, &fakeStore{})
	body := `{"tableKey":"sfdc_customers","name":"compact","parentWidth":"400px","columns":[{"key":"a","width":"25%"},{"key":"b"}]}`

	rec := do(t, srv, http.MethodPost, "/api/presets", body)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("without key status = %d, want 401", rec.Code)
	}

	rec = do(t, srv, http.MethodPost, "/api/presets", body, "X-API-Key", "test-key")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	preset := decode[core.Preset](t, rec)

	rec = do(t, srv, http.MethodPost, "/api/presets", body, "X-API-Key", "test-key")
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", rec.Code)
	}

	rec = do(t, srv, http.MethodGet, "/api/preset/"+preset.ID+"/layout", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("layout status = %d: %s", rec.Code, rec.Body.String())
	}
	got := decode[core.LayoutResult](t, rec)
	if got.ParentWidth != "400px" || got.Columns[0].Width != "100px" || got.Columns[1].Width != "300px" {
		t.Errorf("preset layout = %+v", got)
	}

	rec = do(t, srv, http.MethodGet, "/api/presets/sfdc_customers", "")
	if list := decode[[]core.Preset](t, rec); len(list) != 1 || list[0].Name != "compact" {
		t.Errorf("list = %+v", list)
	}

	rec = do(t, srv, http.MethodDelete, "/api/preset/"+preset.ID, "", "X-API-Key", "test-key")
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
	rec = do(t, srv, http.MethodGet, "/api/preset/"+preset.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestSelection_Flow(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodPost, "/api/selection", `{"tableKey":"sfdc_customers","keys":["a","b","c"],"status":[false,true]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start status = %d: %s", rec.Code, rec.Body.String())
	}
	state := decode[core.SelectionState](t, rec)
	if state.Count != 1 || state.AllChecked {
		t.Fatalf("initial state = %+v", state)
	}

	rec = do(t, srv, http.MethodPost, "/api/selection/"+state.ID+"/toggle/0", "")
	state = decode[core.SelectionState](t, rec)
	if state.Count != 2 {
		t.Errorf("after toggle count = %d, want 2", state.Count)
	}

	rec = do(t, srv, http.MethodPost, "/api/selection/"+state.ID+"/toggle-all", "")
	state = decode[core.SelectionState](t, rec)
	if !state.AllChecked || state.Count != 3 {
		t.Errorf("after toggle-all = %+v", state)
	}

	rec = do(t, srv, http.MethodPost, "/api/selection/"+state.ID+"/toggle/9", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("out of range status = %d, want 400", rec.Code)
	}
	rec = do(t, srv, http.MethodPost, "/api/selection/"+state.ID+"/toggle/x", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric index status = %d, want 400", rec.Code)
	}

	rec = do(t, srv, http.MethodDelete, "/api/selection/"+state.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("end status = %d", rec.Code)
	}
	rec = do(t, srv, http.MethodGet, "/api/selection/"+state.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after end status = %d, want 404", rec.Code)
	}
}

func TestSelection_TooLarge(t *testing.T) {
	srv := newTestServer(t, nil)
	keys, _ := json.Marshal(strings.Split("a,b,c,d,e,f,g,h,i,j,k", ","))
	rec := do(t, srv, http.MethodPost, "/api/selection", `{"keys":`+string(keys)+`}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decode[ErrorResponse](t, rec); got.Code != "SEL003" {
		t.Errorf("code = %q, want SEL003", got.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     2,
		window:   time.Minute,
		now:      func() time.Time { return now },
	}

	if !rl.allow("1.1.1.1") || !rl.allow("1.1.1.1") {
		t.Fatal("first two requests should pass")
	}
	if rl.allow("1.1.1.1") {
		t.Error("third request in window should be limited")
	}
	if !rl.allow("2.2.2.2") {
		t.Error("other clients are limited separately")
	}

	now = now.Add(2 * time.Minute)
	if !rl.allow("1.1.1.1") {
		t.Error("new window should reset tokens")
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	cfg := testConfig()
	cfg.Rate = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1}
	srv := NewServer(core.NewService(cfg, nil), cfg)
	defer srv.Shutdown(context.Background())

	first := do(t, srv, http.MethodGet, "/healthz", "")
	second := do(t, srv, http.MethodGet, "/healthz", "")
	if first.Code != http.StatusOK || second.Code != http.StatusTooManyRequests {
		t.Fatalf("statuses = %d, %d", first.Code, second.Code)
	}
	if got := decode[ErrorResponse](t, second); got.Code != "RATE001" {
		t.Errorf("code = %q, want RATE001", got.Code)
	}
	if second.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q", second.Header().Get("Retry-After"))
	}
}

func TestDecodeJSON_BodyLimit(t *testing.T) {
	srv := newTestServer(t, nil)
	big := `{"parentWidth":"` + string(bytes.Repeat([]byte("x"), MaxRequestBody)) + `"}`
	rec := do(t, srv, http.MethodPost, "/api/layout/resolve", big)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
