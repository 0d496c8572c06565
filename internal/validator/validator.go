package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// IsSlug 校验 URL slug 格式：小写字母、数字、中划线
func IsSlug(fl validator.FieldLevel) bool {
	return slugRe.MatchString(fl.Field().String())
}
