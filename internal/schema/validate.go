package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/strnadel/strnadel-api/internal/errs"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report JSON names rather than Go field names
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := jsonName(f)
			if name == "" && f.Tag.Get("json") == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// Bind decodes a JSON object into v (a pointer to a schema struct), fills
// defaults and validates the result. Keys match JSON names exactly; unknown
// keys are ignored. Every offending field is reported in one
// *errs.ValidationError: type mismatches first, then missing required fields
// and rule violations of the fields that did decode.
func Bind(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errs.NewValidationError("body", "request body is required", "object")
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("schema: bind target must be a pointer to a struct, got %T", v)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return decodeError(err)
	}
	if raw == nil {
		return errs.NewValidationError("body", "must be a JSON object", "object")
	}

	var bad []errs.FieldError
	mistyped := map[string]bool{}
	sv, st := rv.Elem(), rv.Elem().Type()
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		name := jsonName(f)
		msg, ok := raw[name]
		if name == "" || !ok || !sv.Field(i).CanSet() {
			continue
		}
		if err := json.Unmarshal(msg, sv.Field(i).Addr().Interface()); err != nil {
			bad = append(bad, fieldDecodeError(name, f, err))
			mistyped[name] = true
		}
	}

	ApplyDefaults(v)
	if err := Validate(v); err != nil {
		var ve *errs.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		for _, fe := range ve.Fields {
			if !mistyped[topLevel(fe.Field)] {
				bad = append(bad, fe)
			}
		}
	}
	if len(bad) > 0 {
		return &errs.ValidationError{Fields: bad}
	}
	return nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return errs.NewValidationError("body", "must be a JSON object", "object")
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return errs.NewValidationError("body", fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset), "object")
	}
	return errs.NewValidationError("body", err.Error(), "object")
}

func fieldDecodeError(name string, f reflect.StructField, err error) errs.FieldError {
	out := errs.FieldError{Field: name, Error: err.Error(), Expected: describeType(f.Type, expectedOf(f))}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		out.Error = "invalid type " + typeErr.Value
	}
	return out
}

// topLevel maps "images[1]" and "images.x" to "images".
func topLevel(path string) string {
	if i := strings.IndexAny(path, ".["); i >= 0 {
		return path[:i]
	}
	return path
}

// Validate runs the declared constraints of v and collects every offending
// field. It returns nil when v is valid.
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.NewValidationError("body", err.Error(), "object")
	}
	out := &errs.ValidationError{Fields: make([]errs.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, errs.FieldError{
			Field:    fieldPath(fe),
			Error:    message(fe),
			Expected: expected(fe),
		})
	}
	return out
}

// fieldPath strips the struct name from the namespace: Inquiry.name -> name,
// CaseStudy.images[1] -> images[1].
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "http_url", "url":
		return "must be a valid absolute http(s) URL"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s:%s", fe.Tag(), fe.Param())
		}
		return "failed " + fe.Tag()
	}
}

func expected(fe validator.FieldError) string {
	switch fe.Tag() {
	case "http_url", "url":
		return "url"
	}
	return describeType(fe.Type(), "")
}

// expectedOf resolves the URL-ness of a field from its tags so type errors
// on URL fields report "url" rather than "string".
func expectedOf(f reflect.StructField) string {
	if !strings.Contains(f.Tag.Get("validate"), "http_url") {
		return ""
	}
	if f.Type.Kind() == reflect.Slice {
		return "array of url"
	}
	return "url"
}

func describeType(t reflect.Type, override string) string {
	if override != "" {
		return override
	}
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array of " + describeType(t.Elem(), "")
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	}
	return t.String()
}

// ApplyDefaults sets absent (nil or empty) string fields from their
// `default` tag and replaces nil slices with empty ones. v must be a pointer
// to a struct.
func ApplyDefaults(v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		fv := rv.Field(i)
		if !fv.CanSet() {
			continue
		}
		switch fv.Kind() {
		case reflect.String:
			if def, ok := f.Tag.Lookup("default"); ok && fv.String() == "" {
				fv.SetString(def)
			}
		case reflect.Pointer:
			def, ok := f.Tag.Lookup("default")
			if ok && fv.IsNil() && fv.Type().Elem().Kind() == reflect.String {
				p := reflect.New(fv.Type().Elem())
				p.Elem().SetString(def)
				fv.Set(p)
			}
		case reflect.Slice:
			if fv.IsNil() {
				fv.Set(reflect.MakeSlice(fv.Type(), 0, 0))
			}
		}
	}
}

// CollectionOf returns the collection an entity is stored in: its type name
// in lower case.
func CollectionOf(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return strings.ToLower(t.Name())
}
