// Package export writes the bulk files published next to the API: one
// CSV or Parquet file per catalog resource, holding the same records the
// resource endpoint returns with default parameters.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/wanderdata/wanderdata/core/application/mapper"
	"github.com/wanderdata/wanderdata/core/domain"
	"github.com/wanderdata/wanderdata/core/logger"
)

// Formats
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// Lister is the slice of the analytics service the exporter needs
type Lister interface {
	List(ctx context.Context, name string, params map[string]string) (any, error)
	Resources() []*domain.QueryDefinition
}

// Converter rewrites a CSV file into a Parquet file
type Converter interface {
	Exec(ctx context.Context, statement string, args ...any) error
}

// Exporter writes resource exports into a directory
type Exporter struct {
	lister    Lister
	converter Converter
	dir       string
	format    string
}

// Option configures an Exporter
type Option func(*Exporter)

// WithConverter sets the database used to produce Parquet files
func WithConverter(c Converter) Option {
	return func(e *Exporter) {
		e.converter = c
	}
}

// New creates an exporter writing format files into dir
func New(lister Lister, dir, format string, opts ...Option) (*Exporter, error) {
	format = strings.ToLower(format)
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatParquet {
		return nil, fmt.Errorf("unsupported export format '%s'", format)
	}
	e := &Exporter{lister: lister, dir: dir, format: format}
	for _, opt := range opts {
		opt(e)
	}
	if e.format == FormatParquet && e.converter == nil {
		return nil, fmt.Errorf("parquet export needs a converter")
	}
	return e, nil
}

// FileName is the export file of resource
func (e *Exporter) FileName(resource string) string {
	ext := ".csv"
	if e.format == FormatParquet {
		ext = ".parquet"
	}
	return resource + "_data" + ext
}

// ExportAll writes every resource, one after the other, and returns the
// written paths in catalog order
func (e *Exporter) ExportAll(ctx context.Context) ([]string, error) {
	defs := e.lister.Resources()
	paths := make([]string, 0, len(defs))
	for _, def := range defs {
		path, err := e.Export(ctx, def.Name)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", def.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Export writes one resource and returns the file path. The output
// directory is created when missing.
func (e *Exporter) Export(ctx context.Context, resource string) (string, error) {
	log := logger.New("export")

	records, err := e.lister.List(ctx, resource, nil)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	csvPath := filepath.Join(e.dir, resource+"_data.csv")
	if e.format == FormatParquet {
		csvPath = filepath.Join(e.dir, "."+resource+"_data.csv.tmp")
	}
	n, err := writeCSV(csvPath, records)
	if err != nil {
		return "", err
	}

	path := csvPath
	if e.format == FormatParquet {
		path = filepath.Join(e.dir, e.FileName(resource))
		defer os.Remove(csvPath)
		statement := fmt.Sprintf("COPY (SELECT * FROM read_csv_auto(%s, header = true)) TO %s (FORMAT parquet)",
			quoteLiteral(csvPath), quoteLiteral(path))
		if err := e.converter.Exec(ctx, statement); err != nil {
			return "", fmt.Errorf("convert to parquet: %w", err)
		}
	}

	log.Debugf("Wrote %d %s records to %s", n, resource, path)
	return path, nil
}

// writeCSV writes a slice of record structs with a header row of their
// column tags and returns the number of records written
func writeCSV(path string, records any) (int, error) {
	v := reflect.ValueOf(records)
	if v.Kind() != reflect.Slice || v.Type().Elem().Kind() != reflect.Struct {
		return 0, fmt.Errorf("records must be a slice of structs, got %T", records)
	}
	columns, fields := columnsOf(v.Type().Elem())

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		f.Close()
		return 0, err
	}
	line := make([]string, len(fields))
	for i := 0; i < v.Len(); i++ {
		rec := v.Index(i)
		for j, idx := range fields {
			line[j] = formatValue(rec.Field(idx))
		}
		if err := w.Write(line); err != nil {
			f.Close()
			return 0, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return 0, err
	}
	return v.Len(), f.Close()
}

func columnsOf(t reflect.Type) ([]string, []int) {
	var columns []string
	var fields []int
	for i := 0; i < t.NumField(); i++ {
		col := t.Field(i).Tag.Get(mapper.TagName)
		if col == "" || col == "-" || !t.Field(i).IsExported() {
			continue
		}
		columns = append(columns, col)
		fields = append(fields, i)
	}
	return columns, fields
}

// formatValue renders a record field; NULL becomes an empty cell
func formatValue(v reflect.Value) string {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	}
	if t, ok := v.Interface().(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	return fmt.Sprint(v.Interface())
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
