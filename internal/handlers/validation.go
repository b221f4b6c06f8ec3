package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var errInvalidJSON = errors.New("invalid json")

// ValidationError is the 422 body, one entry per rejected field.
type ValidationError struct {
	Detail []FieldError `json:"detail"`
}

type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// RegisterJSONTagNames makes validator report json field names.
func RegisterJSONTagNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// bindJSON decodes the whole request body into obj and validates it. Unlike
// ShouldBindJSON it rejects trailing data after the first JSON value.
func bindJSON(ctx *gin.Context, obj any) error {
	body, err := ctx.GetRawData()
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return io.EOF
	}
	if !json.Valid(body) {
		return errInvalidJSON
	}
	return binding.JSON.BindBody(body, obj)
}

func validationDetails(err error) []FieldError {
	var (
		validationErrs validator.ValidationErrors
		typeErr        *json.UnmarshalTypeError
		syntaxErr      *json.SyntaxError
	)

	switch {
	case errors.As(err, &validationErrs):
		details := make([]FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			details = append(details, fieldError(fe))
		}
		return details
	case errors.As(err, &typeErr):
		return []FieldError{typeError(typeErr)}
	case errors.Is(err, errInvalidJSON), errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return []FieldError{{
			Loc:  bodyLoc(""),
			Msg:  "JSON decode error",
			Type: "json_invalid",
		}}
	case errors.Is(err, io.EOF):
		return []FieldError{{
			Loc:  bodyLoc(""),
			Msg:  "Field required",
			Type: "missing",
		}}
	default:
		return []FieldError{{
			Loc:  bodyLoc(""),
			Msg:  err.Error(),
			Type: "value_error",
		}}
	}
}

// typeError reports the first mistyped value. A type error without a field
// means the body itself is not an object.
func typeError(err *json.UnmarshalTypeError) FieldError {
	switch {
	case err.Field == "":
		return FieldError{
			Loc:  bodyLoc(""),
			Msg:  "Input should be a valid dictionary or object to extract fields from",
			Type: "model_attributes_type",
		}
	case strings.HasPrefix(err.Value, "number"):
		return FieldError{
			Loc:  bodyLoc(err.Field),
			Msg:  "Input should be a finite number",
			Type: "finite_number",
		}
	default:
		return FieldError{
			Loc:  bodyLoc(err.Field),
			Msg:  "Input should be a valid number",
			Type: "float_type",
		}
	}
}

func fieldError(fe validator.FieldError) FieldError {
	if fe.Tag() == "required" {
		return FieldError{
			Loc:  bodyLoc(fe.Field()),
			Msg:  "Field required",
			Type: "missing",
		}
	}

	return FieldError{
		Loc:  bodyLoc(fe.Field()),
		Msg:  fe.Error(),
		Type: fe.Tag(),
	}
}

func bodyLoc(field string) []string {
	if field == "" {
		return []string{"body"}
	}
	return append([]string{"body"}, strings.Split(field, ".")...)
}
