package req

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/cryptodash"
)

type queryParamDecoder struct {
	dec *schema.Decoder
}

func newQueryParamDecoder() queryParamDecoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return queryParamDecoder{dec}
}

func (q queryParamDecoder) decode(structPtr any, params map[string][]string) error {
	if v := reflect.ValueOf(structPtr); v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T is not a pointer to a struct", cryptodash.ErrBadAny, structPtr)
	}

	if err := q.dec.Decode(structPtr, params); err != nil {
		return translateDecoderError(err)
	}

	return nil
}

// translateDecoderError converts an error returned by *schema.Decoder into standardized errors.
// Mismatches between a request's query params and the expected shape become ValidationErrors.
// Anything else is a programming error.
func translateDecoderError(err error) error {
	var pkgErrs schema.MultiError
	if !errors.As(err, &pkgErrs) {
		return fmt.Errorf("%w: %s", cryptodash.ErrBadFormat, err)
	}

	var validErrs ValidationErrors
	for _, pkgErr := range pkgErrs {
		switch err := pkgErr.(type) {
		case schema.ConversionError:
			// NOTE: err.Index is -1 for non-slice values.
			validErrs = append(validErrs, ValidationError{
				Field: err.Key,
				Got:   fmt.Sprintf("bad value at index %d", max(0, err.Index)),
				Rule:  "must be " + err.Type.String(),
			})

		case schema.EmptyFieldError:
			return fmt.Errorf(`%w: use validate tags to set "required" fields, not schema`, cryptodash.ErrNotImplemented)

		case schema.UnknownKeyError:
			validErrs = append(validErrs, ValidationError{
				Field: err.Key,
				Got:   "value is set",
				Rule:  "unexpected key should not be set",
			})

		default:
			if strings.Contains(err.Error(), "schema: converter not found for") {
				return fmt.Errorf("%w: cannot convert values into unsupported type", cryptodash.ErrNotImplemented)
			}

			return fmt.Errorf("%w: %s", cryptodash.ErrUnexpected, err)
		}
	}

	return validErrs
}
