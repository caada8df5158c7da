package datatool

import (
	"database/sql"
	"fmt"
	"reflect"
)

// Record is one fetched row keyed by column name. SQL NULL is stored as
// nil. When the result repeats a column name, the name resolves to the
// first column carrying it.
type Record map[string]any

// Reader holds the rows read by ExecuteReader, in result order.
type Reader struct {
	columns []string
	records []Record
	values  [][]any
	pos     int
}

// Columns returns the result column names.
func (r *Reader) Columns() []string { return r.columns }

// Records returns every row.
func (r *Reader) Records() []Record { return r.records }

// Values returns every row as values in column order, including columns
// whose name repeats an earlier one.
func (r *Reader) Values() [][]any { return r.values }

// Len returns the number of rows.
func (r *Reader) Len() int { return len(r.records) }

// Next advances to the next row. It returns false after the last row.
//
//	for reader.Next() {
//		name, err := reader.Record().GetString("Name")
//	}
func (r *Reader) Next() bool {
	if r.pos >= len(r.records) {
		return false
	}
	r.pos++
	return true
}

// Record returns the row Next advanced to.
func (r *Reader) Record() Record {
	if r.pos == 0 {
		return nil
	}
	return r.records[r.pos-1]
}

// scanRows reads rows into a Reader. A positive limit stops after that many
// rows.
func scanRows(rows *sql.Rows, limit int) (*Reader, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	reader := &Reader{columns: columns, records: []Record{}, values: [][]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		rec := make(Record, len(columns))
		for i, col := range columns {
			if _, seen := rec[col]; !seen {
				rec[col] = values[i]
			}
		}
		reader.records = append(reader.records, rec)
		reader.values = append(reader.values, values)

		if limit > 0 && len(reader.records) >= limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return reader, nil
}

// GetObject returns the raw field value, nil for NULL.
func (r Record) GetObject(field string) (any, error) {
	v, ok := r[field]
	if !ok {
		return nil, &UnknownFieldError{Field: field}
	}
	return v, nil
}

// GetString returns a text field. NULL reads as the empty string.
func (r Record) GetString(field string) (string, error) {
	v, err := r.GetObject(field)
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", &FieldTypeError{Field: field, Want: "string", Actual: v}
	}
}

// GetLong returns an integer field. NULL fails with *UnexpectedNullError.
func (r Record) GetLong(field string) (int64, error) {
	return Get[int64](r, field)
}

// Get returns a non-nullable field as T. NULL fails with
// *UnexpectedNullError. Numeric values convert between numeric types, so
// an INTEGER column can be read as int32 or bool.
func Get[T any](r Record, field string) (T, error) {
	var zero T
	v, err := r.GetObject(field)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, &UnexpectedNullError{Field: field}
	}
	return convert[T](field, v)
}

// GetNullable returns a nullable field as *T, nil for NULL.
func GetNullable[T any](r Record, field string) (*T, error) {
	v, err := r.GetObject(field)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	t, err := convert[T](field, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func convert[T any](field string, v any) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}

	var zero T
	target := reflect.TypeOf((*T)(nil)).Elem()
	rv := reflect.ValueOf(v)
	switch {
	case isNumeric(rv.Kind()) && isNumeric(target.Kind()):
		return rv.Convert(target).Interface().(T), nil
	case isNumeric(rv.Kind()) && target.Kind() == reflect.Bool:
		b := !rv.IsZero()
		return reflect.ValueOf(b).Convert(target).Interface().(T), nil
	case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 && target.Kind() == reflect.String:
		return rv.Convert(target).Interface().(T), nil
	}
	return zero, &FieldTypeError{Field: field, Want: target.String(), Actual: v}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
