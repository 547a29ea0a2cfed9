package validator

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("homename", homeNameValidator)
	}
}

// Organization names may mix Japanese scripts with latin letters and digits,
// plus a small punctuation set. Single interior spaces only.
var allowedNamePunct = map[rune]bool{
	'・': true, 'ー': true, '-': true, '&': true, '\'': true, '.': true,
	'(': true, ')': true, '（': true, '）': true,
}

func IsValidHomeName(name string) bool {
	if name == "" {
		return false
	}
	if strings.HasPrefix(name, " ") || strings.HasSuffix(name, " ") {
		return false
	}
	if strings.Contains(name, "  ") {
		return false
	}

	for _, r := range name {
		switch {
		case r == ' ':
		case unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han, unicode.Latin):
		case unicode.IsDigit(r):
		case allowedNamePunct[r]:
		default:
			return false
		}
	}

	return true
}

var homeNameValidator validator.Func = func(fl validator.FieldLevel) bool {
	return IsValidHomeName(fl.Field().String())
}
