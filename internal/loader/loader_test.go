package loader

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeSink struct {
	calls  []int
	failAt int // 1-based call that fails, 0 = never
	short  bool
}

func (f *fakeSink) Append(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	f.calls = append(f.calls, len(rows))
	if f.failAt == len(f.calls) {
		return 0, errors.New("connection reset")
	}
	if f.short {
		return int64(len(rows) - 1), nil
	}
	return int64(len(rows)), nil
}

func makeRows(n int) [][]any {
	rows := make([][]any, n)
	for i := range rows {
		rows[i] = []any{int64(i), "x", nil}
	}
	return rows
}

var testTable = Table{Name: "orders", Columns: []string{"id", "name", "note"}}

func TestLoadChunks(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		rows  int
		chunk int
		want  []int
	}{
		{"exact multiple", 10, 5, []int{5, 5}},
		{"remainder", 11, 5, []int{5, 5, 1}},
		{"single chunk", 3, 10, []int{3}},
		{"empty", 0, 10, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sink := &fakeSink{}
			l := New(sink, tt.chunk, nil)
			if err := l.Load(context.Background(), testTable, makeRows(tt.rows)); err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if len(sink.calls) != len(tt.want) {
				t.Fatalf("expected %d appends, got %v", len(tt.want), sink.calls)
			}
			for i := range tt.want {
				if sink.calls[i] != tt.want[i] {
					t.Errorf("append %d: expected %d rows, got %d", i, tt.want[i], sink.calls[i])
				}
			}
			st := l.Stats()[testTable.Name]
			if st.Rows != int64(tt.rows) || st.Batches != len(tt.want) {
				t.Errorf("unexpected stats %+v", st)
			}
		})
	}
}

func TestLoadAbortsOnFirstFailure(t *testing.T) {
	t.Parallel()
	sink := &fakeSink{failAt: 2}
	l := New(sink, 4, nil)

	err := l.Load(context.Background(), testTable, makeRows(20))
	if !errors.Is(err, ErrSinkFailure) {
		t.Fatalf("expected ErrSinkFailure, got %v", err)
	}
	if len(sink.calls) != 2 {
		t.Errorf("expected load to stop after the failing append, got %d calls", len(sink.calls))
	}
	st := l.Stats()[testTable.Name]
	if !st.Partial || st.Rows != 4 {
		t.Errorf("expected partial table with 4 rows, got %+v", st)
	}

	if err := l.Load(context.Background(), testTable, makeRows(1)); !errors.Is(err, ErrSinkFailure) {
		t.Errorf("loading into a failed table should be refused, got %v", err)
	}
}

func TestLoadRejectsShortAcknowledgement(t *testing.T) {
	t.Parallel()
	l := New(&fakeSink{short: true}, 10, nil)
	if err := l.Load(context.Background(), testTable, makeRows(5)); !errors.Is(err, ErrSinkFailure) {
		t.Errorf("expected ErrSinkFailure, got %v", err)
	}
}

func TestDigestIndependentOfChunking(t *testing.T) {
	t.Parallel()
	rows := makeRows(37)

	a := New(&fakeSink{}, 5, nil)
	b := New(&fakeSink{}, 100, nil)
	a.Load(context.Background(), testTable, rows)
	b.Load(context.Background(), testTable, rows[:20])
	b.Load(context.Background(), testTable, rows[20:])

	da, db := a.Stats()[testTable.Name].Digest, b.Stats()[testTable.Name].Digest
	if da != db {
		t.Errorf("digest depends on chunking: %s vs %s", da, db)
	}

	c := New(&fakeSink{}, 5, nil)
	changed := makeRows(37)
	changed[10][1] = "y"
	c.Load(context.Background(), testTable, changed)
	if c.Stats()[testTable.Name].Digest == da {
		t.Error("digest should change when a value changes")
	}
}

func TestAppendRowEncoding(t *testing.T) {
	t.Parallel()
	date := time.Date(2024, 5, 6, 13, 0, 0, 0, time.UTC)
	got := string(appendRow(nil, []any{"a", nil, 7, int64(8), date}))
	want := "a\x1f\\N\x1f7\x1f8\x1f2024-05-06\x1e"
	if got != want {
		t.Errorf("appendRow = %q, want %q", got, want)
	}
}
