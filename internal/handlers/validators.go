package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// accountCodePattern matches hierarchical dotted codes like "10", "10.10" or "10.10.01".
var accountCodePattern = regexp.MustCompile(`^\d{1,4}(\.\d{1,4})*$`)

// registerCustomValidations attaches domain-specific binding tags to gin's validator.
func registerCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("account_code", func(fl validator.FieldLevel) bool {
			return accountCodePattern.MatchString(fl.Field().String())
		})
	}
}
