package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Validator validates request structs by their `validate` tags.
// Supported rules: required, email, min=N, max=N (numeric value or
// string/slice length), oneof=a b c.
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates a struct
func (v *Validator) Validate(s interface{}) error {
	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return fmt.Errorf("validate expects a struct")
	}

	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		// Embedded structs contribute their fields as if declared inline.
		if fieldType.Anonymous && field.Kind() == reflect.Struct {
			if err := v.Validate(field.Interface()); err != nil {
				return err
			}
			continue
		}

		tag := fieldType.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonName(fieldType)
		if err := v.validateField(field, name, tag); err != nil {
			return err
		}
	}

	return nil
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return f.Name
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" {
		return f.Name
	}
	return tag
}

// validateField validates a single field
func (v *Validator) validateField(field reflect.Value, name, tag string) error {
	rules := strings.Split(tag, ",")

	// omitempty short-circuits the remaining rules for zero values.
	for _, rule := range rules {
		if rule == "omitempty" && field.IsZero() {
			return nil
		}
	}

	for _, rule := range rules {
		parts := strings.SplitN(rule, "=", 2)
		ruleName := parts[0]
		arg := ""
		if len(parts) == 2 {
			arg = parts[1]
		}

		switch ruleName {
		case "required":
			if field.IsZero() {
				return fmt.Errorf("%s: field is required", name)
			}

		case "email":
			if field.Kind() == reflect.String {
				email := field.String()
				at := strings.Index(email, "@")
				if at < 1 || at == len(email)-1 {
					return fmt.Errorf("%s: invalid email format", name)
				}
			}

		case "min":
			limit, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				continue
			}
			if size, ok := fieldSize(field); ok && size < limit {
				return fmt.Errorf("%s: must be at least %d", name, limit)
			}

		case "max":
			limit, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				continue
			}
			if size, ok := fieldSize(field); ok && size > limit {
				return fmt.Errorf("%s: must be at most %d", name, limit)
			}

		case "oneof":
			if field.Kind() != reflect.String || arg == "" {
				continue
			}
			value := field.String()
			found := false
			for _, option := range strings.Fields(arg) {
				if value == option {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("%s: must be one of [%s]", name, arg)
			}
		}
	}

	return nil
}

// fieldSize returns the comparable magnitude of a field: its numeric
// value for numbers, its length for strings and slices.
func fieldSize(field reflect.Value) (int64, bool) {
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return field.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(field.Uint()), true
	case reflect.String, reflect.Slice, reflect.Map:
		return int64(field.Len()), true
	default:
		return 0, false
	}
}
