// Package validator registers the custom binding rules used by the
// request models.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/careloop/scheduling-api/pkg/timeutil"
)

// hhmm accepts 24h clock strings like "08:00" or "17:30".
func hhmm(fl validator.FieldLevel) bool {
	_, err := timeutil.ParseMinuteOfDay(fl.Field().String())
	return err == nil
}

// Register installs the custom rules on gin's binding validator. Call
// once at startup before serving requests.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("hhmm", hhmm)
}
