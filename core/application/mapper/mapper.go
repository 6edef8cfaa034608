package mapper

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/wanderdata/wanderdata/core/domain"
	"github.com/wanderdata/wanderdata/core/shared/errors"
)

// TagName is the struct tag naming the result column a field is projected from
const TagName = "col"

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

type fieldSpec struct {
	column   string
	optional bool
}

var fieldCache sync.Map // reflect.Type -> []fieldSpec

// fieldsOf returns the tagged fields of schema. Pointer fields are optional
// and accept NULL; every other field is required.
func fieldsOf(schema reflect.Type) []fieldSpec {
	if cached, ok := fieldCache.Load(schema); ok {
		return cached.([]fieldSpec)
	}
	specs := make([]fieldSpec, 0, schema.NumField())
	for i := 0; i < schema.NumField(); i++ {
		f := schema.Field(i)
		col := f.Tag.Get(TagName)
		if col == "" || col == "-" || !f.IsExported() {
			continue
		}
		specs = append(specs, fieldSpec{column: col, optional: f.Type.Kind() == reflect.Pointer})
	}
	fieldCache.Store(schema, specs)
	return specs
}

var timeType = reflect.TypeFor[time.Time]()

type float64er interface {
	Float64() float64
}

// storeValueHook converts driver-specific values into the plain Go values
// the record fields hold: dates become YYYY-MM-DD strings and decimal
// wrappers become float64.
func storeValueHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from == timeType && to.Kind() == reflect.String {
		return data.(time.Time).Format(DateLayout), nil
	}
	if d, ok := data.(float64er); ok {
		switch to.Kind() {
		case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int32, reflect.Int64:
			return d.Float64(), nil
		}
	}
	return data, nil
}

func decodeRow(queryName string, index int, row domain.Row, schema reflect.Type, target any) error {
	values := make(map[string]any, len(row.Columns))
	for _, field := range fieldsOf(schema) {
		v, ok := row.Get(field.column)
		if !ok {
			return errors.SchemaMismatch(queryName, "row %d: missing column '%s' required by %s", index, field.column, schema.Name())
		}
		if v == nil && !field.optional {
			return errors.SchemaMismatch(queryName, "row %d: column '%s' is NULL but %s requires a value", index, field.column, schema.Name())
		}
		values[field.column] = v
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          TagName,
		WeaklyTypedInput: true,
		DecodeHook:       storeValueHook,
		Result:           target,
	})
	if err != nil {
		return errors.WrapError(errors.ErrCodeInternalError, "failed to build record decoder", err)
	}
	if err := decoder.Decode(values); err != nil {
		return errors.WrapError(errors.ErrCodeSchemaMismatch,
			fmt.Sprintf("row %d does not fit %s", index, schema.Name()), err).With("query", queryName)
	}
	return nil
}

// Map projects rows into records of type T, preserving row order. Empty
// input yields an empty, non-nil slice.
func Map[T any](queryName string, rows []domain.Row) ([]T, error) {
	schema := reflect.TypeFor[T]()
	if schema.Kind() != reflect.Struct {
		return nil, errors.NewAppError(errors.ErrCodeInternalError, fmt.Sprintf("record type %s is not a struct", schema), nil)
	}
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		var rec T
		if err := decodeRow(queryName, i, row, schema, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// MapSchema is Map for a schema known only at runtime. The result is a
// []schema value.
func MapSchema(queryName string, rows []domain.Row, schema reflect.Type) (any, error) {
	if schema == nil || schema.Kind() != reflect.Struct {
		return nil, errors.NewAppError(errors.ErrCodeInternalError, fmt.Sprintf("query '%s' has no record schema", queryName), nil)
	}
	out := reflect.MakeSlice(reflect.SliceOf(schema), 0, len(rows))
	for i, row := range rows {
		rec := reflect.New(schema)
		if err := decodeRow(queryName, i, row, schema, rec.Interface()); err != nil {
			return nil, err
		}
		out = reflect.Append(out, rec.Elem())
	}
	return out.Interface(), nil
}

// Scalar extracts the single integer of a count query. The result must be
// exactly one row holding exactly one column.
func Scalar(queryName string, rows []domain.Row) (int64, error) {
	if len(rows) != 1 {
		return 0, errors.SchemaMismatch(queryName, "expected exactly 1 row, got %d", len(rows))
	}
	if n := rows[0].Len(); n != 1 {
		return 0, errors.SchemaMismatch(queryName, "expected exactly 1 column, got %d", n)
	}
	// the column is read positionally so the alias does not matter
	row := domain.NewRow([]string{"count"}, rows[0].Values)
	recs, err := Map[domain.CountResult](queryName, []domain.Row{row})
	if err != nil {
		return 0, err
	}
	return recs[0].Count, nil
}
