package core

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/JonMunkholm/vtable/internal/config"
	db "github.com/JonMunkholm/vtable/internal/database"
	"github.com/JonMunkholm/vtable/internal/layout"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// memStore is an in-memory PresetStore with the same unique constraint as
// the layout_presets table.
type memStore struct {
	mu   sync.Mutex
	rows map[[16]byte]db.LayoutPreset
	err  error
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[[16]byte]db.LayoutPreset)}
}

func (m *memStore) CreateLayoutPreset(_ context.Context, arg db.CreateLayoutPresetParams) (db.LayoutPreset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return db.LayoutPreset{}, m.err
	}
	for _, r := range m.rows {
		if r.TableKey == arg.TableKey && r.Name == arg.Name {
			return db.LayoutPreset{}, &pgconn.PgError{Code: "23505", ConstraintName: db.PresetNameConstraint}
		}
	}
	now := pgtype.Timestamptz{Time: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), Valid: true}
	row := db.LayoutPreset{
		ID:          arg.ID,
		TableKey:    arg.TableKey,
		Name:        arg.Name,
		ParentWidth: arg.ParentWidth,
		Columns:     arg.Columns,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.rows[arg.ID.Bytes] = row
	return row, nil
}

func (m *memStore) GetLayoutPreset(_ context.Context, id pgtype.UUID) (db.LayoutPreset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return db.LayoutPreset{}, m.err
	}
	row, ok := m.rows[id.Bytes]
	if !ok {
		return db.LayoutPreset{}, pgx.ErrNoRows
	}
	return row, nil
}

func (m *memStore) ListLayoutPresets(_ context.Context, tableKey string) ([]db.LayoutPreset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []db.LayoutPreset
	for _, r := range m.rows {
		if r.TableKey == tableKey {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) DeleteLayoutPreset(_ context.Context, id pgtype.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	if _, ok := m.rows[id.Bytes]; !ok {
		return 0, nil
	}
	delete(m.rows, id.Bytes)
	return 1, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Layout: config.LayoutConfig{
			DefaultParentWidth: "1200px",
			PercentReserve:     10,
			PixelReserve:       100,
			MaxColumns:         8,
		},
		Selection: config.SelectionConfig{
			TTL:           time.Minute,
			MaxRows:       5,
			SweepInterval: time.Second,
		},
	}
}

func registerTestViews(t *testing.T) {
	t.Helper()
	Clear()
	t.Cleanup(Clear)

	Register(TableView{
		Info: TableInfo{Key: "orders", Group: "Test", Label: "Orders"},
		Columns: []layout.ColumnSpec{
			{Key: "select", Type: layout.ColumnCheckbox, Width: "40px"},
			{Key: "id", Title: "ID", DataIndex: "id", Width: "160px"},
			{Key: "customer", Title: "Customer", DataIndex: "customer"},
		},
	})
	Register(TableView{
		Info: TableInfo{Key: "lines", Group: "Test", Label: "Lines"},
		Columns: []layout.ColumnSpec{
			{Key: "a", Title: "A", DataIndex: "a", Width: "40%"},
			{Key: "b", Title: "B", DataIndex: "b", Width: "60%"},
		},
	})
}

func widths(cols []layout.ColumnSpec) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = string(c.Width)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestResolveColumns(t *testing.T) {
	svc := NewService(testConfig(), nil)
	ctx := context.Background()

	tests := []struct {
		name       string
		columns    []layout.ColumnSpec
		parent     string
		wantWidths []string
		wantFamily string
		wantDiags  int
	}{
		{
			name: "default parent width",
			columns: []layout.ColumnSpec{
				{Key: "a", Width: "200px"},
				{Key: "b"},
			},
			parent:     "",
			wantWidths: []string{"200px", "1000px"},
			wantFamily: "px",
		},
		{
			name: "percent overflow keeps reserve",
			columns: []layout.ColumnSpec{
				{Key: "a", Width: "60%"},
				{Key: "b", Width: "60%"},
				{Key: "c"},
			},
			parent:     "100%",
			wantWidths: []string{"45%", "45%", "10%"},
			wantFamily: "percent",
		},
		{
			name: "malformed width becomes auto",
			columns: []layout.ColumnSpec{
				{Key: "a", Width: "300px"},
				{Key: "b", Width: "wide"},
			},
			parent:     "800px",
			wantWidths: []string{"300px", "500px"},
			wantFamily: "px",
			wantDiags:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ResolveColumns(ctx, tt.columns, tt.parent)
			if err != nil {
				t.Fatalf("ResolveColumns() error = %v", err)
			}
			if w := widths(got.Columns); !equalStrings(w, tt.wantWidths) {
				t.Errorf("widths = %v, want %v", w, tt.wantWidths)
			}
			if got.Family != tt.wantFamily {
				t.Errorf("Family = %q, want %q", got.Family, tt.wantFamily)
			}
			if len(got.Diagnostics) != tt.wantDiags {
				t.Errorf("Diagnostics = %v, want %d", got.Diagnostics, tt.wantDiags)
			}
			if got.Diagnostics == nil {
				t.Error("Diagnostics should be non-nil")
			}
		})
	}
}

func TestResolveColumns_Errors(t *testing.T) {
	svc := NewService(testConfig(), nil)
	ctx := context.Background()

	tooMany := make([]layout.ColumnSpec, 9)

	tests := []struct {
		name    string
		columns []layout.ColumnSpec
		parent  string
		want    error
	}{
		{"no columns with bad parent", nil, "wide", layout.ErrInvalidParentWidth},
		{"too many columns", tooMany, "100%", ErrInvalidColumns},
		{"bad parent", []layout.ColumnSpec{{Key: "a"}}, "auto", layout.ErrInvalidParentWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ResolveColumns(ctx, tt.columns, tt.parent)
			if !errors.Is(err, tt.want) {
				t.Errorf("ResolveColumns() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResolveColumns_Empty(t *testing.T) {
	svc := NewService(testConfig(), nil)

	for _, parent := range []string{"100%", "640px", ""} {
		got, err := svc.ResolveColumns(context.Background(), nil, parent)
		if err != nil {
			t.Fatalf("ResolveColumns(nil, %q) error = %v", parent, err)
		}
		if got.Columns == nil || len(got.Columns) != 0 {
			t.Errorf("ResolveColumns(nil, %q) columns = %#v, want empty slice", parent, got.Columns)
		}
		if got.Diagnostics == nil || len(got.Diagnostics) != 0 {
			t.Errorf("ResolveColumns(nil, %q) diagnostics = %#v, want empty slice", parent, got.Diagnostics)
		}
	}
}

func TestResolveTable(t *testing.T) {
	registerTestViews(t)
	svc := NewService(testConfig(), nil)

	got, err := svc.ResolveTable(context.Background(), "orders", "1000px")
	if err != nil {
		t.Fatalf("ResolveTable() error = %v", err)
	}
	if got.TableKey != "orders" {
		t.Errorf("TableKey = %q", got.TableKey)
	}
	if w := widths(got.Columns); !equalStrings(w, []string{"40px", "160px", "800px"}) {
		t.Errorf("widths = %v", w)
	}

	if _, err := svc.ResolveTable(context.Background(), "missing", ""); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("ResolveTable(missing) error = %v, want ErrTableNotFound", err)
	}
}

func TestListTablesByGroup(t *testing.T) {
	registerTestViews(t)
	svc := NewService(testConfig(), nil)

	infos := svc.ListTables()
	if len(infos) != 2 || infos[0].Key != "lines" || infos[1].Key != "orders" {
		t.Errorf("ListTables() = %+v", infos)
	}
	if !infos[1].Selectable || infos[0].Selectable {
		t.Errorf("Selectable flags wrong: %+v", infos)
	}

	groups := svc.ListTablesByGroup()
	if len(groups["Test"]) != 2 {
		t.Errorf("ListTablesByGroup() = %+v", groups)
	}
}

func TestPresets_Disabled(t *testing.T) {
	svc := NewService(testConfig(), nil)
	ctx := context.Background()

	if svc.PresetsEnabled() {
		t.Fatal("PresetsEnabled() = true without store")
	}
	if _, err := svc.CreatePreset(ctx, PresetInput{TableKey: "orders", Name: "x"}); !errors.Is(err, ErrPresetsDisabled) {
		t.Errorf("CreatePreset() error = %v", err)
	}
	if _, err := svc.ListPresets(ctx, "orders"); !errors.Is(err, ErrPresetsDisabled) {
		t.Errorf("ListPresets() error = %v", err)
	}
	if err := svc.DeletePreset(ctx, "x"); !errors.Is(err, ErrPresetsDisabled) {
		t.Errorf("DeletePreset() error = %v", err)
	}
	if _, err := svc.ResolvePreset(ctx, "x", ""); !errors.Is(err, ErrPresetsDisabled) {
		t.Errorf("ResolvePreset() error = %v", err)
	}
}

func TestPresets_Lifecycle(t *testing.T) {
	registerTestViews(t)
	store := newMemStore()
	svc := NewService(testConfig(), store)
	ctx := context.Background()

	columns := []layout.ColumnSpec{
		{Key: "id", Title: "ID", DataIndex: "id", Width: "25%"},
		{Key: "customer", Title: "Customer", DataIndex: "customer"},
	}

	created, err := svc.CreatePreset(ctx, PresetInput{
		TableKey:    "orders",
		Name:        "  narrow  ",
		ParentWidth: "400px",
		Columns:     columns,
	})
	if err != nil {
		t.Fatalf("CreatePreset() error = %v", err)
	}
	if created.ID == "" || created.Name != "narrow" || len(created.Columns) != 2 {
		t.Fatalf("CreatePreset() = %+v", created)
	}

	got, err := svc.GetPreset(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetPreset() error = %v", err)
	}
	if got.Columns[0].Width != "25%" {
		t.Errorf("stored width = %q", got.Columns[0].Width)
	}

	// Preset parent width applies when the request omits one.
	res, err := svc.ResolvePreset(ctx, created.ID, "")
	if err != nil {
		t.Fatalf("ResolvePreset() error = %v", err)
	}
	if w := widths(res.Columns); !equalStrings(w, []string{"100px", "300px"}) {
		t.Errorf("ResolvePreset widths = %v", w)
	}
	if res.PresetID != created.ID || res.TableKey != "orders" {
		t.Errorf("ResolvePreset ids = %q %q", res.PresetID, res.TableKey)
	}

	res, err = svc.ResolvePreset(ctx, created.ID, "100%")
	if err != nil {
		t.Fatalf("ResolvePreset(100%%) error = %v", err)
	}
	if w := widths(res.Columns); !equalStrings(w, []string{"25%", "75%"}) {
		t.Errorf("ResolvePreset(100%%) widths = %v", w)
	}

	if _, err := svc.CreatePreset(ctx, PresetInput{TableKey: "orders", Name: "narrow", Columns: columns}); !errors.Is(err, ErrPresetExists) {
		t.Errorf("duplicate CreatePreset() error = %v, want ErrPresetExists", err)
	}

	list, err := svc.ListPresets(ctx, "orders")
	if err != nil || len(list) != 1 {
		t.Fatalf("ListPresets() = %v, %v", list, err)
	}

	if err := svc.DeletePreset(ctx, created.ID); err != nil {
		t.Fatalf("DeletePreset() error = %v", err)
	}
	if err := svc.DeletePreset(ctx, created.ID); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("second DeletePreset() error = %v, want ErrPresetNotFound", err)
	}
	if _, err := svc.GetPreset(ctx, created.ID); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("GetPreset() after delete error = %v", err)
	}
}

func TestCreatePreset_Validation(t *testing.T) {
	registerTestViews(t)
	svc := NewService(testConfig(), newMemStore())
	ctx := context.Background()
	ok := []layout.ColumnSpec{{Key: "a", Width: "10%"}}

	tests := []struct {
		name string
		in   PresetInput
		want error
	}{
		{"missing name", PresetInput{TableKey: "orders", Name: " ", Columns: ok}, ErrPresetNameRequired},
		{"unknown table", PresetInput{TableKey: "nope", Name: "x", Columns: ok}, ErrTableNotFound},
		{"no columns", PresetInput{TableKey: "orders", Name: "x"}, ErrInvalidColumns},
		{"malformed width", PresetInput{TableKey: "orders", Name: "x", Columns: []layout.ColumnSpec{{Key: "a", Width: "1.2.3"}}}, layout.ErrMalformedWidth},
		{"bad parent", PresetInput{TableKey: "orders", Name: "x", ParentWidth: "auto", Columns: ok}, layout.ErrInvalidParentWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreatePreset(ctx, tt.in); !errors.Is(err, tt.want) {
				t.Errorf("CreatePreset() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPresets_InvalidIDAndStoreErrors(t *testing.T) {
	store := newMemStore()
	svc := NewService(testConfig(), store)
	ctx := context.Background()

	if _, err := svc.GetPreset(ctx, "not-a-uuid"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("GetPreset(bad id) error = %v", err)
	}

	store.err = errors.New("dial tcp: connection refused")
	_, err := svc.ListPresets(ctx, "orders")
	if err == nil || MapError(err).Code != "DB004" {
		t.Errorf("ListPresets() error = %v, want DB004", err)
	}
}
