package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/swimhall/receipt_management_app/internal/core/domain"
)

// registerCustomValidators installs binding-level validations shared by the
// request DTOs. The service layer re-checks these rules; rejecting at the
// binding stage just gives callers a 400 with the field name attached.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("feecategory", func(fl validator.FieldLevel) bool {
		switch domain.FeeItemCategory(fl.Field().String()) {
		case domain.CategoryAdmission, domain.CategoryPass, domain.CategoryCourse, domain.CategoryRental, domain.CategoryOther:
			return true
		}
		return false
	})
}
