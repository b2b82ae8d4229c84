package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CategoryExistsFunc reports whether a category with the given id is stored.
type CategoryExistsFunc func(ctx context.Context, id uint) (bool, error)

// Request is a typed request body with its own error messages. Messages are
// keyed by "<json field>.<rule>".
type Request interface {
	Messages() map[string]string
	Normalize()
}

type Validator struct {
	validate *validator.Validate
	log      *logrus.Logger
}

var integerPattern = regexp.MustCompile(`^[-+]?[0-9]+$`)

func New(categoryExists CategoryExistsFunc, logger *logrus.Logger) *Validator {
	v := &Validator{
		validate: validator.New(),
		log:      logger,
	}

	v.validate.RegisterTagNameFunc(jsonFieldName)

	v.validate.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if !integerPattern.MatchString(s) {
			return false
		}
		_, err := strconv.Atoi(s)
		return err == nil
	})
	v.validate.RegisterValidation("int_min", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Field().String())
		if err != nil {
			return false
		}
		limit, err := strconv.Atoi(fl.Param())
		return err == nil && n >= limit
	})
	v.validate.RegisterValidation("decimal_min", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		limit, err := decimal.NewFromString(fl.Param())
		return err == nil && d.GreaterThanOrEqual(limit)
	})
	v.validate.RegisterValidation("decimal_places", func(fl validator.FieldLevel) bool {
		places, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		s := fl.Field().String()
		dot := strings.IndexByte(s, '.')
		return dot < 0 || len(s)-dot-1 <= places
	})
	v.validate.RegisterValidationCtx("category_exists", func(ctx context.Context, fl validator.FieldLevel) bool {
		id, err := strconv.ParseUint(fl.Field().String(), 10, 64)
		if err != nil || id == 0 {
			return false
		}
		ok, err := categoryExists(ctx, uint(id))
		if err != nil {
			logger.Errorf("Category lookup failed during validation: %v", err)
			return false
		}
		return ok
	})

	return v
}

// Bind strictly decodes body into req, normalizes it and validates it.
// It returns *Errors for rule failures and an error wrapping
// ErrMalformedBody when the body cannot be decoded.
func (v *Validator) Bind(ctx context.Context, body []byte, req Request) error {
	typeErrors, err := decodeStrict(body, req)
	if err != nil {
		return err
	}
	req.Normalize()

	fieldErrors := map[string]string{}
	if err := v.validate.StructCtx(ctx, req); err != nil {
		var invalid validator.ValidationErrors
		if !errors.As(err, &invalid) {
			return fmt.Errorf("could not validate request: %w", err)
		}
		messages := req.Messages()
		for _, fe := range invalid {
			fieldErrors[fe.Field()] = message(messages, fe.Field(), fe.Tag())
		}
	}

	result := NewErrors()
	for _, field := range fieldNames(req) {
		if rule, ok := typeErrors[field]; ok {
			result.Add(field, message(req.Messages(), field, rule))
		} else if msg, ok := fieldErrors[field]; ok {
			result.Add(field, msg)
		}
	}
	if result.Empty() {
		return nil
	}

	v.log.WithField("fields", result.fields).Debug("Request failed validation")
	return result
}

// decodeStrict rejects unknown fields. Scalar type mismatches on plain
// string fields are returned per field so they can be reported as
// validation errors; anything else is a malformed body.
func decodeStrict(body []byte, dst any) (map[string]string, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err == nil {
		return nil, nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" && typeErr.Type != scalarType {
		return map[string]string{typeErr.Field: typeErr.Type.Kind().String()}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
}

func message(messages map[string]string, field, rule string) string {
	if msg, ok := messages[field+"."+rule]; ok {
		return msg
	}
	return fmt.Sprintf("The %s field is invalid.", strings.ReplaceAll(field, "_", " "))
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// fieldNames lists the JSON names of req's fields in declaration order.
func fieldNames(req any) []string {
	t := reflect.TypeOf(req)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		fld := t.Field(i)
		if fld.Anonymous || !fld.IsExported() {
			continue
		}
		names = append(names, jsonFieldName(fld))
	}
	return names
}
