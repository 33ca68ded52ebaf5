package dto

import (
	"github.com/erp/stockops/internal/domain/stock"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators installs domain-specific binding validators on
// gin's validator engine. Call once during startup, before routes are served.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("move_state", func(fl validator.FieldLevel) bool {
		return stock.MoveState(fl.Field().String()).IsValid()
	})
}
