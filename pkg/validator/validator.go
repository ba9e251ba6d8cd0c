package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

	setupOnce sync.Once
	shared    *govalidator.Validate
	transOnce sync.Once
	trans     ut.Translator
)

func translator() ut.Translator {
	transOnce.Do(func() {
		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
	})
	return trans
}

// New returns the shared validator configured with JSON field names, the
// custom timetable tags and English translations. The instance is safe for
// concurrent use.
func New() *govalidator.Validate {
	setupOnce.Do(func() {
		shared = govalidator.New()
		configure(shared)
	})
	return shared
}

func configure(v *govalidator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("clock", func(fl govalidator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("hexcolor6", func(fl govalidator.FieldLevel) bool {
		return colorPattern.MatchString(fl.Field().String())
	})

	trans := translator()
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	_ = v.RegisterTranslation("clock", trans, func(u ut.Translator) error {
		return u.Add("clock", "{0} must be a time in HH:MM format", true)
	}, func(u ut.Translator, fe govalidator.FieldError) string {
		t, _ := u.T("clock", fe.Field())
		return t
	})
	_ = v.RegisterTranslation("hexcolor6", trans, func(u ut.Translator) error {
		return u.Add("hexcolor6", "{0} must be a color in #RRGGBB format", true)
	}, func(u ut.Translator, fe govalidator.FieldError) string {
		t, _ := u.T("hexcolor6", fe.Field())
		return t
	})
}

// IsClock reports whether raw is a zero-padded HH:MM clock value.
func IsClock(raw string) bool {
	return clockPattern.MatchString(raw)
}

// TranslateErrors maps a validation error to field name -> message. Errors
// that are not validation errors are returned under "detail".
func TranslateErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(translator())
		}
		return fields
	}

	fields["detail"] = err.Error()
	return fields
}
