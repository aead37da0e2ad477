// Package loader streams generated rows into a sink in bounded chunks.
//
// Every chunk is handed to the sink exactly once. The first failure stops the
// load and marks the table as partial; chunks are never retried because a
// failed append may have been partially applied.
//
// Alongside the row and chunk counts the loader keeps an xxh3 digest of the
// canonical encoding of every acknowledged row, so two runs can be compared
// for byte-identical output without reading the tables back.
package loader

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/zeebo/xxh3"
	"go.uber.org/zap"
)

var ErrSinkFailure = errors.New("sink failure")

// Appender is the part of a sink the loader needs.
type Appender interface {
	Append(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
}

type Table struct {
	Name    string
	Columns []string
}

type TableStats struct {
	Rows    int64
	Batches int
	Digest  string
	Partial bool
}

type tableState struct {
	rows    int64
	batches int
	hash    *xxh3.Hasher
	partial bool
	start   time.Time
}

// BatchLoader is driven by a single committer and is not safe for concurrent
// use.
type BatchLoader struct {
	sink      Appender
	chunkSize int
	log       *zap.Logger
	tables    map[string]*tableState
	buf       []byte
}

func New(sink Appender, chunkSize int, log *zap.Logger) *BatchLoader {
	if log == nil {
		log = zap.NewNop()
	}
	return &BatchLoader{
		sink:      sink,
		chunkSize: chunkSize,
		log:       log,
		tables:    make(map[string]*tableState),
	}
}

func (l *BatchLoader) state(name string) *tableState {
	st, ok := l.tables[name]
	if !ok {
		st = &tableState{hash: xxh3.New(), start: time.Now()}
		l.tables[name] = st
	}
	return st
}

// Load appends rows to t in chunks of at most chunkSize rows and returns once
// the sink has acknowledged all of them.
func (l *BatchLoader) Load(ctx context.Context, t Table, rows [][]any) error {
	if l.chunkSize <= 0 {
		return fmt.Errorf("chunk size must be > 0")
	}
	st := l.state(t.Name)
	if st.partial {
		return fmt.Errorf("%w: table %s already failed", ErrSinkFailure, t.Name)
	}

	for start := 0; start < len(rows); start += l.chunkSize {
		if err := ctx.Err(); err != nil {
			st.partial = true
			return err
		}
		chunk := rows[start:min(start+l.chunkSize, len(rows))]

		began := time.Now()
		n, err := l.sink.Append(ctx, t.Name, t.Columns, chunk)
		if err != nil {
			st.partial = true
			l.log.Error("append failed",
				zap.String("table", t.Name),
				zap.Int("batch", st.batches+1),
				zap.Int64("total_inserted", st.rows),
				zap.Error(err),
			)
			return fmt.Errorf("%w: %s batch %d: %w", ErrSinkFailure, t.Name, st.batches+1, err)
		}
		if n != int64(len(chunk)) {
			st.partial = true
			return fmt.Errorf("%w: %s batch %d: sink acknowledged %d of %d rows",
				ErrSinkFailure, t.Name, st.batches+1, n, len(chunk))
		}

		for _, row := range chunk {
			l.buf = appendRow(l.buf[:0], row)
			st.hash.Write(l.buf)
		}
		st.rows += n
		st.batches++

		elapsed := time.Since(began)
		rps := float64(0)
		if elapsed > 0 {
			rps = float64(n) / elapsed.Seconds()
		}
		l.log.Debug("batch loaded",
			zap.String("table", t.Name),
			zap.Int("batch", st.batches),
			zap.Int64("inserted", n),
			zap.Int64("total_inserted", st.rows),
			zap.Float64("rps", rps),
			zap.Duration("elapsed", time.Since(st.start).Truncate(time.Millisecond)),
		)
	}
	return nil
}

// MarkPartial flags a table whose stage did not finish.
func (l *BatchLoader) MarkPartial(table string) {
	l.state(table).partial = true
}

func (l *BatchLoader) Stats() map[string]TableStats {
	out := make(map[string]TableStats, len(l.tables))
	for name, st := range l.tables {
		out[name] = TableStats{
			Rows:    st.rows,
			Batches: st.batches,
			Digest:  fmt.Sprintf("%016x", st.hash.Sum64()),
			Partial: st.partial,
		}
	}
	return out
}

// appendRow writes the canonical encoding of a row: fields separated by 0x1f,
// rows terminated by 0x1e, NULL as \N, dates as YYYY-MM-DD.
func appendRow(buf []byte, row []any) []byte {
	for i, v := range row {
		if i > 0 {
			buf = append(buf, 0x1f)
		}
		switch x := v.(type) {
		case nil:
			buf = append(buf, `\N`...)
		case string:
			buf = append(buf, x...)
		case int:
			buf = strconv.AppendInt(buf, int64(x), 10)
		case int64:
			buf = strconv.AppendInt(buf, x, 10)
		case time.Time:
			buf = x.AppendFormat(buf, time.DateOnly)
		case fmt.Stringer:
			buf = append(buf, x.String()...)
		default:
			buf = fmt.Append(buf, x)
		}
	}
	return append(buf, 0x1e)
}
