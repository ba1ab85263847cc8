// Package importer bulk-loads the CSV fixtures (static/data) into an empty
// or existing database with COPY, preserving ids.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type kind int

const (
	kindText kind = iota
	kindInt
	kindNullableInt
	kindTime
)

// column maps a CSV header to a table column. When the header is missing
// from the file, def is used if set, otherwise the file is rejected.
type column struct {
	csv  string
	db   string
	kind kind
	def  any
}

// Table describes one CSV file and the table it is copied into.
type Table struct {
	File    string
	Name    string
	columns []column
}

// Tables lists the fixtures in foreign-key order.
var Tables = []Table{
	{
		File: "users.csv", Name: "users",
		columns: []column{
			{csv: "id", db: "id", kind: kindInt},
			{csv: "username", db: "username", kind: kindText},
			{csv: "email", db: "email", kind: kindText},
			{csv: "role", db: "role", kind: kindText, def: "user"},
			{csv: "bio", db: "bio", kind: kindText, def: ""},
			{csv: "first_name", db: "first_name", kind: kindText, def: ""},
			{csv: "last_name", db: "last_name", kind: kindText, def: ""},
		},
	},
	{
		File: "category.csv", Name: "categories",
		columns: []column{
			{csv: "id", db: "id", kind: kindInt},
			{csv: "name", db: "name", kind: kindText},
			{csv: "slug", db: "slug", kind: kindText},
		},
	},
	{
		File: "genre.csv", Name: "genres",
		columns: []column{
			{csv: "id", db: "id", kind: kindInt},
			{csv: "name", db: "name", kind: kindText},
			{csv: "slug", db: "slug", kind: kindText},
		},
	},
	{
		File: "titles.csv", Name: "titles",
		columns: []column{
			{csv: "id", db: "id", kind: kindInt},
			{csv: "name", db: "name", kind: kindText},
			{csv: "year", db: "year", kind: kindInt},
			{csv: "description", db: "description", kind: kindText, def: ""},
			{csv: "category", db: "category_id", kind: kindNullableInt},
		},
	},
	{
		File: "genre_title.csv", Name: "title_genres",
		columns: []column{
			{csv: "id", db: "id", kind: kindInt},
			{csv: "title_id", db: "title_id", kind: kindInt},
			{csv: "genre_id", db: "genre_id", kind: kindInt},
		},
	},
	{
		File: "review.csv", Name: "reviews",
		columns: []column{
			{csv: "id", db: "id", kind: kindInt},
			{csv: "title_id", db: "title_id", kind: kindInt},
			{csv: "text", db: "text", kind: kindText},
			{csv: "author", db: "author_id", kind: kindInt},
			{csv: "score", db: "score", kind: kindInt},
			{csv: "pub_date", db: "pub_date", kind: kindTime},
		},
	},
	{
		File: "comments.csv", Name: "comments",
		columns: []column{
			{csv: "id", db: "id", kind: kindInt},
			{csv: "review_id", db: "review_id", kind: kindInt},
			{csv: "text", db: "text", kind: kindText},
			{csv: "author", db: "author_id", kind: kindInt},
			{csv: "pub_date", db: "pub_date", kind: kindTime},
		},
	},
}

// Columns returns the destination column names in copy order.
func (t Table) Columns() []string {
	cols := make([]string, len(t.columns))
	for i, c := range t.columns {
		cols[i] = c.db
	}
	return cols
}

// Parse reads a CSV with a header row into COPY-ready rows.
func (t Table) Parse(r io.Reader) ([][]any, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read header: %w", t.File, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	positions := make([]int, len(t.columns))
	for i, c := range t.columns {
		pos, ok := index[c.csv]
		if !ok && c.def == nil && c.kind != kindNullableInt {
			return nil, fmt.Errorf("%s: missing column %q", t.File, c.csv)
		}
		if !ok {
			pos = -1
		}
		positions[i] = pos
	}

	var rows [][]any
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", t.File, line, err)
		}

		row := make([]any, len(t.columns))
		for i, c := range t.columns {
			if positions[i] < 0 {
				row[i] = c.def
				continue
			}
			value, err := convert(c, record[positions[i]])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: column %s: %w", t.File, line, c.csv, err)
			}
			row[i] = value
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func convert(c column, raw string) (any, error) {
	raw = strings.TrimSpace(raw)

	switch c.kind {
	case kindInt:
		return strconv.ParseInt(raw, 10, 64)
	case kindNullableInt:
		if raw == "" {
			return nil, nil
		}
		return strconv.ParseInt(raw, 10, 64)
	case kindTime:
		return time.Parse(time.RFC3339Nano, raw)
	default:
		if raw == "" && c.def != nil {
			return c.def, nil
		}
		return raw, nil
	}
}

// Importer copies the fixtures of one directory into the database.
type Importer struct {
	db     Beginner
	logger *zerolog.Logger
}

// Beginner starts transactions; *pgxpool.Pool and *pgx.Conn satisfy it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

func New(db Beginner, logger *zerolog.Logger) *Importer {
	return &Importer{db: db, logger: logger}
}

// Run imports every fixture found in dir in a single transaction, then
// moves each id sequence past the imported ids. Missing files are skipped.
func (im *Importer) Run(ctx context.Context, dir string) (map[string]int64, error) {
	counts := make(map[string]int64, len(Tables))

	err := pgx.BeginFunc(ctx, im.db, func(tx pgx.Tx) error {
		for _, table := range Tables {
			n, err := im.copyTable(ctx, tx, dir, table)
			if err != nil {
				return err
			}
			if n >= 0 {
				counts[table.Name] = n
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// copyTable returns -1 when the fixture file does not exist.
func (im *Importer) copyTable(ctx context.Context, tx pgx.Tx, dir string, table Table) (int64, error) {
	path := filepath.Join(dir, table.File)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		im.logger.Warn().Str("file", path).Msg("fixture not found, skipping")
		return -1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := table.Parse(f)
	if err != nil {
		return 0, err
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{table.Name}, table.Columns(), pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("failed to copy %s: %w", table.Name, err)
	}

	resetSQL := fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE(MAX(id), 1), MAX(id) IS NOT NULL) FROM %[1]s`,
		table.Name,
	)
	if _, err := tx.Exec(ctx, resetSQL); err != nil {
		return 0, fmt.Errorf("failed to reset %s id sequence: %w", table.Name, err)
	}

	im.logger.Info().
		Str("table", table.Name).
		Int64("rows", n).
		Msg("fixture imported")

	return n, nil
}
