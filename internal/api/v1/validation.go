package v1

import (
	"fmt"
	"sync"

	"github.com/aevon-lab/project-tempo/internal/core/timeutil"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidations installs the request tags used by this package (frequency,
// weekday, iana_tz) on gin's binding validator. Safe to call more than once.
func RegisterValidations() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
			return
		}
		err = registerOn(v)
	})
	return err
}

func registerOn(v *validator.Validate) error {
	tags := map[string]validator.Func{
		"frequency": func(fl validator.FieldLevel) bool {
			return Frequency(fl.Field().String()).Valid()
		},
		"weekday": func(fl validator.FieldLevel) bool {
			return Weekday(fl.Field().String()).Valid()
		},
		"iana_tz": func(fl validator.FieldLevel) bool {
			_, err := timeutil.LoadLocation(fl.Field().String())
			return err == nil
		},
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validation: %w", tag, err)
		}
	}
	return nil
}
