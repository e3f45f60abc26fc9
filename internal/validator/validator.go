// Package validator registers the custom binding tags used by request structs.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"nivesh/internal/currency"
	"nivesh/internal/valuation"
)

var assetTypeKeyRegex = regexp.MustCompile(`^[a-z][a-z0-9_]{0,31}$`)

// Register adds the custom tags to gin's validator engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn adds the custom tags to v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("currency_code", validateCurrencyCode)
	_ = v.RegisterValidation("account_kind", validateAccountKind)
	_ = v.RegisterValidation("asset_type_key", validateAssetTypeKey)
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	return currency.Code(fl.Field().String()).Valid()
}

func validateAccountKind(fl validator.FieldLevel) bool {
	return valuation.AccountKind(fl.Field().String()).Valid()
}

func validateAssetTypeKey(fl validator.FieldLevel) bool {
	return assetTypeKeyRegex.MatchString(fl.Field().String())
}
