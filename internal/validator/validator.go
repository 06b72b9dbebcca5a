// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// tickerRegex matches short alphanumeric ticker symbols like BTC or AVAX2.
var tickerRegex = regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`)

// usernameRegex allows letters, digits, dots, dashes, and underscores.
var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9._-]{3,80}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ticker", validateTicker)
		_ = v.RegisterValidation("username", validateUsername)
	}
}

func validateTicker(fl validator.FieldLevel) bool {
	return tickerRegex.MatchString(fl.Field().String())
}

func validateUsername(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}
