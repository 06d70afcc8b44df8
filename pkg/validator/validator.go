// Package validator wires a custom validator engine into gin binding and
// registers domain validation tags.
package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	val "github.com/go-playground/validator/v10"
)

// CustomValidator implements binding.StructValidator with a lazily built
// engine, so tag registration happens before first validation.
type CustomValidator struct {
	once     sync.Once
	validate *val.Validate
}

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

func (v *CustomValidator) ValidateStruct(obj interface{}) error {
	if kindOfData(obj) == reflect.Struct {
		v.lazyinit()
		if err := v.validate.Struct(obj); err != nil {
			return err
		}
	}
	return nil
}

func (v *CustomValidator) Engine() interface{} {
	v.lazyinit()
	return v.validate
}

func (v *CustomValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = val.New()
		v.validate.SetTagName("binding")
	})
}

func kindOfData(data interface{}) reflect.Kind {
	value := reflect.ValueOf(data)
	valueType := value.Kind()
	if valueType == reflect.Ptr {
		valueType = value.Elem().Kind()
	}
	return valueType
}

// RegisterCustom registers domain validation tags on the active binding
// validator. Call after binding.Validator is set.
func RegisterCustom() {
	validate, ok := binding.Validator.Engine().(*val.Validate)
	if !ok {
		return
	}

	// notetitle: a note title must have visible content and may not contain
	// the wiki-link delimiter characters.
	_ = validate.RegisterValidation("notetitle", func(fl val.FieldLevel) bool {
		title := fl.Field().String()
		if strings.TrimSpace(title) == "" {
			return false
		}
		return !strings.ContainsAny(title, "[]|#^")
	})
}
