// Package quotes reads the daily quote list from its JSON encodings.
package quotes

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/classroom-viewer/internal/domain"
)

const field = "quotes"

// entry is one element of the quote list document.
type entry struct {
	Author string `json:"author" validate:"required,max=200"`
	Quote  string `json:"quote"  validate:"required,max=2000"`
	Source string `json:"source" validate:"omitempty,max=2000"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func entryValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		})
	})

	return validate
}

// Parse decodes a JSON array of {author, quote, source?} objects into a
// QuoteList. Surrounding whitespace is trimmed from every field. Any
// malformed input is a validation error on the "quotes" field.
func Parse(data []byte) (domain.QuoteList, error) {
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return domain.QuoteList{}, domain.NewValidationError(field, describeJSONError(err))
	}

	if len(entries) == 0 {
		return domain.QuoteList{}, domain.NewValidationError(field, "quote list is empty")
	}

	list := make([]domain.Quote, 0, len(entries))

	for i, e := range entries {
		e.Author = strings.TrimSpace(e.Author)
		e.Quote = strings.TrimSpace(e.Quote)
		e.Source = strings.TrimSpace(e.Source)

		if err := entryValidator().Struct(e); err != nil {
			return domain.QuoteList{}, domain.NewValidationErrorWithValue(field,
				fmt.Sprintf("entry %d: %s", i, describeEntryError(err)), i)
		}

		list = append(list, domain.Quote{Author: e.Author, Text: e.Quote, Source: e.Source})
	}

	return domain.NewQuoteList(list)
}

func describeJSONError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return "document must be a JSON array"
		}

		return fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type)
	}

	return "invalid JSON: " + err.Error()
}

func describeEntryError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]

	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
