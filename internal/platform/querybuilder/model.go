package querybuilder

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// InsertModel inserts one row whose columns come from the model's db tags.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := modelColumns(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

// UpsertModel inserts the model and, on a conflict over key, overwrites every
// other tagged column. touch adds raw assignments such as "updated_at = NOW()".
func UpsertModel(table string, model any, key []string, touch ...string) (string, []any, error) {
	if len(key) == 0 {
		return "", nil, fmt.Errorf("upsert conflict key is required")
	}
	cols, _, err := modelColumns(model)
	if err != nil {
		return "", nil, err
	}

	sets := make([]string, 0, len(cols)+len(touch))
	for _, col := range cols {
		if slices.Contains(key, col) {
			continue
		}
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	sets = append(sets, touch...)
	if len(sets) == 0 {
		return InsertModel(table, model, "ON CONFLICT ("+strings.Join(key, ", ")+") DO NOTHING")
	}

	suffix := "ON CONFLICT (" + strings.Join(key, ", ") + ") DO UPDATE SET " + strings.Join(sets, ", ")
	return InsertModel(table, model, suffix)
}

func modelColumns(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
