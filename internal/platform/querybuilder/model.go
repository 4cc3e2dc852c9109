package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModels builds a multi-row insert from struct values using their
// `db` tags as column names. Fields tagged `db:"-"` or without a tag are
// skipped. All models must share the same concrete type.
func InsertModels(table string, models []any, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("insert models are required")
	}

	columns, indexes, err := modelColumns(models[0])
	if err != nil {
		return "", nil, err
	}

	builder := InsertInto(table).Columns(columns...)
	firstType := reflect.TypeOf(models[0])
	for i, model := range models {
		v := reflect.ValueOf(model)
		if v.Kind() == reflect.Pointer {
			v = v.Elem()
		}
		if v.Type() != firstType && reflect.TypeOf(model) != firstType {
			return "", nil, fmt.Errorf("insert model %d has type %s, expected %s", i, v.Type(), firstType)
		}
		values := make([]any, 0, len(indexes))
		for _, idx := range indexes {
			values = append(values, v.Field(idx).Interface())
		}
		builder.Values(values...)
	}

	if suffix != "" {
		builder.Suffix(suffix)
	}
	return builder.ToSQL()
}

// InsertModel is the single-row form of InsertModels.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	return InsertModels(table, []any{model}, suffix)
}

func modelColumns(model any) ([]string, []int, error) {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("insert model must be a struct, got %s", v.Kind())
	}

	t := v.Type()
	columns := make([]string, 0, t.NumField())
	indexes := make([]int, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("db")
		tag, _, _ = strings.Cut(tag, ",")
		if tag == "" || tag == "-" {
			continue
		}
		columns = append(columns, tag)
		indexes = append(indexes, i)
	}
	if len(columns) == 0 {
		return nil, nil, fmt.Errorf("insert model %s has no db-tagged fields", t)
	}
	return columns, indexes, nil
}
