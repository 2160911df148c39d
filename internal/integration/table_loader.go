// Package integration handles reading datasets from external files
package integration

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/abelzeko/dino-velocity/internal/entities"
	"github.com/abelzeko/dino-velocity/internal/table"
)

// naTokens are the cell values read as missing, as pandas does by default.
var naTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// TableLoader reads delimited text files and HTML tables into tables
type TableLoader struct {
	delimiter rune
	log       *zap.SugaredLogger
}

// LoaderOption customizes a TableLoader.
type LoaderOption func(*TableLoader)

// WithDelimiter sets the field delimiter for delimited text files.
func WithDelimiter(r rune) LoaderOption {
	return func(l *TableLoader) {
		if r != 0 {
			l.delimiter = r
		}
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(log *zap.Logger) LoaderOption {
	return func(l *TableLoader) {
		if log != nil {
			l.log = log.Sugar()
		}
	}
}

// NewTableLoader creates a new dataset loader
func NewTableLoader(opts ...LoaderOption) *TableLoader {
	l := &TableLoader{
		delimiter: ',',
		log:       zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadTable reads the file at path. Files ending in .html or .htm are parsed
// as HTML; anything else as delimited text.
func (l *TableLoader) LoadTable(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &entities.OpError{
			Op:   "integration.load_table",
			Kind: entities.KindFileAccess,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return l.readHTML(path, f)
	default:
		return l.readCSV(path, f)
	}
}

func (l *TableLoader) readCSV(path string, r io.Reader) (*table.Table, error) {
	const op = "integration.read_csv"
	l.log.Infof("Parsing delimited file %s", path)

	cr := csv.NewReader(r)
	cr.Comma = l.delimiter
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, entities.NewOpError(op, entities.KindInvalidArgument, path, "no header row: %w", entities.ErrInvalidArgument)
	}
	if err != nil {
		return nil, readError(op, path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := table.New(header)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError(op, path, err)
		}
		if err := t.AppendRow(toCells(record, len(header), false)); err != nil {
			line, _ := cr.FieldPos(0)
			return nil, &entities.OpError{Op: op, Kind: entities.KindInvalidArgument, Path: path,
				Err: fmt.Errorf("record on line %d: %w", line, err)}
		}
	}

	l.log.Infof("Parsed %d rows with %d columns from %s", t.Len(), len(t.Columns), path)
	return t, nil
}

func (l *TableLoader) readHTML(path string, r io.Reader) (*table.Table, error) {
	const op = "integration.read_html"
	l.log.Infof("Parsing HTML document %s", path)

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, readError(op, path, err)
	}

	tbl := doc.Find("table").First()
	if tbl.Length() == 0 {
		return nil, entities.NewOpError(op, entities.KindInvalidArgument, path, "document has no table: %w", entities.ErrInvalidArgument)
	}

	var header []string
	tbl.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("th")
		if cells.Length() == 0 {
			return true
		}
		cells.Each(func(_ int, c *goquery.Selection) {
			header = append(header, strings.TrimSpace(c.Text()))
		})
		return false
	})
	if len(header) == 0 {
		return nil, entities.NewOpError(op, entities.KindInvalidArgument, path, "table has no header cells: %w", entities.ErrInvalidArgument)
	}

	t := table.New(header)
	var rowErr error
	skipped := 0
	tbl.Find("tr").EachWithBreak(func(index int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() == 0 {
			skipped++
			return true
		}
		record := make([]string, 0, cells.Length())
		cells.Each(func(_ int, c *goquery.Selection) {
			record = append(record, c.Text())
		})
		if err := t.AppendRow(toCells(record, len(header), true)); err != nil {
			rowErr = fmt.Errorf("row %d: %w", index, err)
			return false
		}
		return true
	})
	if rowErr != nil {
		return nil, &entities.OpError{Op: op, Kind: entities.KindInvalidArgument, Path: path, Err: rowErr}
	}

	l.log.Infof("Parsed %d rows (%d without data cells) from %s", t.Len(), skipped, path)
	return t, nil
}

// toCells converts a record to cells, padding short records with nulls up to
// width. Longer records are kept whole so the table rejects them. HTML cell
// text is trimmed; delimited fields are kept verbatim.
func toCells(record []string, width int, trim bool) []table.Cell {
	cells := make([]table.Cell, max(len(record), width))
	for i, v := range record {
		if trim {
			v = strings.TrimSpace(v)
		}
		if _, na := naTokens[v]; na {
			cells[i] = table.Null
			continue
		}
		cells[i] = table.Value(v)
	}
	return cells
}

func readError(op, path string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &entities.OpError{Op: op, Kind: entities.KindInvalidArgument, Path: path, Err: err}
	}
	return &entities.OpError{Op: op, Kind: entities.KindFileAccess, Path: path, Err: err}
}
