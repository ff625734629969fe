package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxRequestBodyBytes caps JSON request bodies.
const MaxRequestBodyBytes = 1 << 20

// Global validator instance for reuse
var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ErrEmptyBody is returned by DecodeJSON when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

// DecodeJSON decodes the request body into the given struct. The body must
// hold exactly one JSON value.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxRequestBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	if dec.More() {
		return fmt.Errorf("request body must contain a single JSON value")
	}
	return nil
}

// DecodeErrorDetails describes a DecodeJSON failure as field errors. Type
// mismatches name the offending field; anything else is reported on "body".
func DecodeErrorDetails(err error) []FieldError {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, ErrEmptyBody):
		return []FieldError{{Field: "body", Message: "is required"}}
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return []FieldError{{Field: typeErr.Field, Message: "must be a " + typeErr.Type.String()}}
	default:
		return []FieldError{{Field: "body", Message: "must be a single valid JSON object"}}
	}
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	if sv, ok := v.(interface{ Validate() error }); ok {
		return sv.Validate()
	}
	return validate.Struct(v)
}
