package source

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multicombo/internal/catalog"
	apperrors "multicombo/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDecode(t *testing.T) {
	want := []catalog.Entry{
		{ID: "1", Label: "Apple"},
		{ID: "2", Label: "Banana", Selected: true},
	}

	tests := []struct {
		name string
		doc  string
	}{
		{"yaml list", "- id: \"1\"\n  label: Apple\n- id: \"2\"\n  label: Banana\n  selected: true\n"},
		{"yaml mapping", "options:\n  - {id: \"1\", label: Apple}\n  - {id: \"2\", label: Banana, selected: true}\n"},
		{"json list", `[{"id":"1","label":"Apple"},{"id":"2","label":"Banana","selected":true}]`},
		{"json mapping", `{"options":[{"id":"1","label":"Apple"},{"id":"2","label":"Banana","selected":true}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.doc))
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("entries mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("keeps kind for validation", func(t *testing.T) {
		got, err := Decode([]byte("- {kind: div, id: x, label: X}\n"))
		require.NoError(t, err)
		assert.Equal(t, "div", got[0].Kind)
	})

	t.Run("empty document", func(t *testing.T) {
		got, err := Decode([]byte("  \n"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("scalar document", func(t *testing.T) {
		_, err := Decode([]byte("just text"))
		assert.True(t, apperrors.IsCode(err, apperrors.CodeParseFailed))
	})

	t.Run("malformed entry is skipped", func(t *testing.T) {
		docs := map[string]string{
			"list":    "- {id: \"1\", label: Apple}\n- {id: \"2\", label: Banana, selected: maybe}\n- {id: \"3\", label: Cherry}\n",
			"mapping": "options:\n  - {id: \"1\", label: Apple}\n  - {id: {nested: true}, label: Banana}\n  - {id: \"3\", label: Cherry}\n",
		}
		for name, doc := range docs {
			t.Run(name, func(t *testing.T) {
				got, err := Decode([]byte(doc))
				require.Error(t, err)
				want := []catalog.Entry{{ID: "1", Label: "Apple"}, {ID: "3", Label: "Cherry"}}
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("entries mismatch (-want +got):\n%s", diff)
				}
				skipped := Skipped(err)
				require.Len(t, skipped, 1)
				assert.True(t, apperrors.IsCode(skipped[0], apperrors.CodeMalformedOption))
				assert.Contains(t, skipped[0].Error(), "catalog entry 2 (line")
			})
		}
	})

	t.Run("options must be a list", func(t *testing.T) {
		_, err := Decode([]byte("options: nope\n"))
		assert.True(t, apperrors.IsCode(err, apperrors.CodeParseFailed))
		assert.Nil(t, Skipped(err))
	})

	t.Run("broken yaml", func(t *testing.T) {
		_, err := Decode([]byte("- id: [1\n"))
		assert.True(t, apperrors.IsCode(err, apperrors.CodeParseFailed))
	})
}

func TestSkipped(t *testing.T) {
	assert.Nil(t, Skipped(nil))
	assert.Nil(t, Skipped(apperrors.New(apperrors.CodeNotFound, "gone", nil)))

	one := apperrors.New(apperrors.CodeMalformedOption, "bad", nil)
	assert.Equal(t, []error{one}, Skipped(one))

	two := apperrors.New(apperrors.CodeMalformedOption, "worse", nil)
	assert.Len(t, Skipped(errors.Join(one, two)), 2)

	fatal := apperrors.New(apperrors.CodeSourceFailed, "disk", nil)
	assert.Nil(t, Skipped(errors.Join(one, fatal)))
}

func TestFileLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fruits.yaml")
	writeFile(t, path, "- {id: a, label: Apple}\n")

	f := NewFile(path)
	assert.Equal(t, path, f.Path())
	got, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []catalog.Entry{{ID: "a", Label: "Apple"}}, got)

	_, err = NewFile(filepath.Join(dir, "missing.yaml")).Load(context.Background())
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func testDB(t *testing.T, table string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(`CREATE TABLE ` + table + ` (id TEXT, label TEXT, selected INTEGER)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO `+table+` (id, label, selected) VALUES (?, ?, ?), (?, ?, ?), (?, ?, NULL)`,
		"fr", "France", 0,
		"de", "Germany", 1,
		"it", "Italy")
	require.NoError(t, err)
	return path
}

func TestSQLiteLoad(t *testing.T) {
	path := testDB(t, "countries")

	src, err := NewSQLite(path, "countries")
	require.NoError(t, err)
	got, err := src.Load(context.Background())
	require.NoError(t, err)

	want := []catalog.Entry{
		{ID: "fr", Label: "France"},
		{ID: "de", Label: "Germany", Selected: true},
		{ID: "it", Label: "Italy"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteErrors(t *testing.T) {
	_, err := NewSQLite(" ", "")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConfigurationError))

	_, err = NewSQLite("x.db", "options; DROP TABLE x")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConfigurationError))

	src, err := NewSQLite("x.db", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultTable, src.Table())

	path := testDB(t, "countries")
	src, err = NewSQLite(path, "cities")
	require.NoError(t, err)
	_, err = src.Load(context.Background())
	assert.True(t, apperrors.IsCode(err, apperrors.CodeSourceFailed))
}

func TestBuildReadOnlyDSN(t *testing.T) {
	dsn := buildReadOnlyDSN("/tmp/catalog.db")
	assert.Contains(t, dsn, "file:///tmp/catalog.db?")
	assert.Contains(t, dsn, "mode=ro")
	assert.Contains(t, dsn, "_journal_mode=WAL")
}

func TestOpen(t *testing.T) {
	src, err := Open(Spec{Path: "fruits.yaml"})
	require.NoError(t, err)
	assert.IsType(t, &File{}, src)

	src, err = Open(Spec{Path: "fruits.sqlite"})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, src)

	src, err = Open(Spec{Path: "fruits.yaml", SQLite: "fruits.db", Table: "fruit"})
	require.NoError(t, err)
	require.IsType(t, &SQLite{}, src)
	assert.Equal(t, "fruit", src.(*SQLite).Table())

	_, err = Open(Spec{})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConfigurationError))
}

func TestWatcherUnseen(t *testing.T) {
	w := NewWatcher(NewFile("unused.yaml"), []string{"a"})

	fresh := w.Unseen([]catalog.Entry{
		{ID: "a", Label: "Apple"},
		{ID: "b", Label: "Banana"},
		{ID: "", Label: "No id"},
		{ID: "b", Label: "Banana again"},
	})
	assert.Equal(t, []catalog.Entry{{ID: "b", Label: "Banana"}}, fresh)
	assert.Empty(t, w.Unseen([]catalog.Entry{{ID: "b", Label: "Banana"}}))
}

func TestWatcherEmitsAdditions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fruits.yaml")
	writeFile(t, path, "- {id: a, label: Apple}\n")

	w := NewWatcher(NewFile(path), []string{"a"}, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer func() { _ = w.Stop() }()

	// Rapid writes coalesce into a single reload.
	for i := 0; i < 5; i++ {
		writeFile(t, path, "- {id: a, label: Apple}\n- {id: b, label: Banana}\n")
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case got := <-w.Additions():
		assert.Equal(t, []catalog.Entry{{ID: "b", Label: "Banana"}}, got)
	case err := <-w.Errors():
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "expected additions but got timeout")
	}

	select {
	case got := <-w.Additions():
		require.Failf(t, "unexpected second batch", "%v", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fruits.yaml")
	other := filepath.Join(dir, "other.txt")
	writeFile(t, path, "- {id: a, label: Apple}\n")
	writeFile(t, other, "initial")

	w := NewWatcher(NewFile(path), nil, WithDebounce(20*time.Millisecond))
	require.NoError(t, w.Start(context.Background()))
	defer func() { _ = w.Stop() }()

	writeFile(t, other, "changed")

	select {
	case <-w.Additions():
		require.Fail(t, "should not reload for unrelated files")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcherStartStop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fruits.yaml")
	writeFile(t, path, "[]")

	w := NewWatcher(NewFile(path), nil)
	require.NoError(t, w.Start(context.Background()))
	assert.Error(t, w.Start(context.Background()), "second start")

	done := make(chan struct{})
	go func() {
		_ = w.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "Stop hung")
	}
	assert.NoError(t, w.Stop(), "stop is idempotent")
}
