package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"stay/shared/constant"
	"stay/shared/failure"
	"strings"

	val "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate *val.Validate

// registerMoneyValidation accepts a non-negative amount that fits numeric(10,2).
func registerMoneyValidation(field val.FieldLevel) bool {
	amount, err := decimal.NewFromString(field.Field().String())
	if err != nil {
		return false
	}

	if amount.IsNegative() {
		return false
	}

	if !amount.Equal(amount.Round(constant.MoneyDecimals)) {
		return false
	}

	limit := decimal.New(1, constant.MoneyDigits-constant.MoneyDecimals)

	return amount.LessThan(limit)
}

// registerIntegerValidation accepts values that fit a Postgres INTEGER column.
func registerIntegerValidation(field val.FieldLevel) bool {
	value := field.Field()

	switch value.Kind() { //nolint:exhaustive
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int() >= -constant.MaxColumnInteger-1 && value.Int() <= constant.MaxColumnInteger
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return value.Uint() <= constant.MaxColumnInteger
	default:
		return false
	}
}

func decimalTypeFunc(field reflect.Value) any {
	if amount, ok := field.Interface().(decimal.Decimal); ok {
		return amount.String()
	}

	return nil
}

func jsonTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)
	validate.RegisterCustomTypeFunc(decimalTypeFunc, decimal.Decimal{})

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		empty := fl.Field().IsZero()

		return empty
	})

	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("money", registerMoneyValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("integer", registerIntegerValidation)
	if err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

// ValidateID checks an identifier passed outside of a request body.
func ValidateID(id string) error {
	err := validate.Var(id, "required,uuid")

	if err != nil {
		return failure.BadRequestFromString("id" + message(err)) //nolint:wrapcheck
	}

	return nil
}
