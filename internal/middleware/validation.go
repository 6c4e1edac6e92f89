package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/ajg/form"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	apierrors "fundingpulse/internal/errors"
)

// QueryValidator binds URL query parameters into request structs by their
// `form` tag and validates them with validator struct tags.
type QueryValidator struct {
	validator *validator.Validate
	decoder   *form.Decoder
	logger    *slog.Logger
}

// NewQueryValidator creates a new query parameter validator
func NewQueryValidator(logger *slog.Logger) *QueryValidator {
	v := validator.New()

	// Report query parameter names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	decoder := form.NewDecoder(nil)
	decoder.IgnoreUnknownKeys(true)

	return &QueryValidator{
		validator: v,
		decoder:   decoder,
		logger:    logger.With(slog.String("component", "query_validator")),
	}
}

// Bind overwrites the fields of dst (a pointer to struct) that have a
// non-empty query parameter, then validates the result. Absent parameters
// keep whatever defaults dst already holds.
func (v *QueryValidator) Bind(r *http.Request, dst interface{}) error {
	if rv := reflect.ValueOf(dst); rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bind target must be a pointer to struct, got %T", dst)
	}

	query := r.URL.Query()
	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var bindErrors []apierrors.ValidationError
	for _, key := range keys {
		raw := strings.TrimSpace(query.Get(key))
		if raw == "" {
			continue
		}
		// one key at a time so a decode failure names its parameter
		if err := v.decoder.DecodeValues(dst, url.Values{key: {raw}}); err != nil {
			bindErrors = append(bindErrors, apierrors.ValidationError{
				Field:   key,
				Message: fmt.Sprintf("%s has an invalid value %q", key, raw),
			})
		}
	}

	if len(bindErrors) == 0 {
		return v.ValidateStruct(dst)
	}

	v.logger.DebugContext(r.Context(), "query binding failed",
		slog.String("path", r.URL.Path),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Int("errors", len(bindErrors)),
	)
	return apierrors.NewValidationErrors(bindErrors)
}

// ValidateStruct validates a struct and returns an APIError listing every
// failed field.
func (v *QueryValidator) ValidateStruct(s interface{}) error {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierrors.InvalidRequestWithError(err)
	}

	validationErrors := make([]apierrors.ValidationError, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		validationErrors = append(validationErrors, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: formatValidationError(fe),
		})
	}
	return apierrors.NewValidationErrors(validationErrors)
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}
