package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/at-ishikawa/itera/internal/schedule"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("tzoffset", isTimezoneOffset); err != nil {
		return nil, nil, fmt.Errorf("failed to register tzoffset validation: %w", err)
	}
	if err := validate.RegisterTranslation("tzoffset", trans, func(ut ut.Translator) error {
		return ut.Add("tzoffset", fmt.Sprintf("{0} must be a UTC offset in minutes between %d and %d",
			schedule.MinTimezoneOffset, schedule.MaxTimezoneOffset), true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("tzoffset", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register tzoffset translation: %w", err)
	}

	return validate, trans, nil
}

func isTimezoneOffset(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return schedule.ValidOffset(int(fl.Field().Int()))
	}
	return false
}
