// Package bind provides JSON parse and validation helpers for handlers
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "scrutiny/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ValidatorSvc holds the singleton validator and its english translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// maxBodyBytes caps request bodies; these endpoints carry short free text
const maxBodyBytes = 1 << 20

// ParseJSON decodes the request body into T (unknown fields rejected) and
// validates it, mapping failures onto the platform error taxonomy
func ParseJSON[T any](r *http.Request) (T, error) {
	var in T

	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&in); err != nil {
		switch {
		case errors.Is(err, io.EOF):
			return in, perr.JSONErrf("request body is empty")
		default:
			return in, perr.Wrapf(err, perr.ErrorCodeJSON, "malformed json body")
		}
	}
	// one JSON value per request
	if dec.More() {
		return in, perr.JSONErrf("unexpected trailing data after json body")
	}

	if err := Get().Validator.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			msg := fe.Translate(Get().Translator)
			return in, perr.WithField(perr.Validationf("%s", msg), fe.Field())
		}
		return in, perr.Wrapf(err, perr.ErrorCodeValidation, "validation failed")
	}

	return in, nil
}
