package validatorx

import (
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *gpvalidator.Validate
)

func get() *gpvalidator.Validate {
	once.Do(func() {
		v = gpvalidator.New()
	})
	return v
}

// ValidateStruct runs the struct's `validate` tags and returns the first
// set of violations, if any.
func ValidateStruct(s interface{}) error {
	return get().Struct(s)
}
