// Package validator binds request bodies and checks them with struct tags.
// Besides the stock rules it knows date (YYYY-MM-DD), money (a NUMERIC(18,2)
// amount, "money=positive" rejects zero), mimetypes and maxfilesize (in MB)
// for multipart uploads. Error messages name the field by its json key.
package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"hotel/shared/constant"
	"hotel/shared/failure"

	val "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	moneyScale     = 2
	moneyPositive  = "positive"
	moneyMaxDigits = 16
	bytesPerMB     = 1 << 20
)

var (
	maxMoney = decimal.New(1, moneyMaxDigits)
	validate = newValidate()
)

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())

	rules := map[string]val.Func{
		"empty":       isEmpty,
		"date":        isDate,
		"money":       isMoney,
		"mimetypes":   hasMimetype,
		"maxfilesize": withinFileSize,
	}

	for tag, rule := range rules {
		if err := v.RegisterValidation(tag, rule); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}

	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})
	v.RegisterTagNameFunc(jsonName)

	return v
}

func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == constant.Empty || name == "-" {
		return field.Name
	}

	return name
}

func isEmpty(field val.FieldLevel) bool {
	return field.Field().IsZero()
}

func isDate(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(time.DateOnly, value)

	return err == nil
}

func fileHeader(field val.FieldLevel) *multipart.FileHeader {
	switch value := field.Field().Interface().(type) {
	case *multipart.FileHeader:
		return value
	case multipart.FileHeader:
		return &value
	}

	return nil
}

// hasMimetype checks the part's declared content type against the space
// separated list in the param.
func hasMimetype(field val.FieldLevel) bool {
	header := fileHeader(field)
	if header == nil {
		return false
	}

	contentType := header.Header.Get(constant.RequestHeaderContentType)

	return contentType != constant.Empty && slices.Contains(strings.Fields(field.Param()), contentType)
}

func withinFileSize(field val.FieldLevel) bool {
	header := fileHeader(field)
	if header == nil {
		return false
	}

	maxMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return float64(header.Size) <= maxMB*bytesPerMB
}

// decimalValue lets string rules such as required and money see decimal fields.
func decimalValue(field reflect.Value) any {
	switch value := field.Interface().(type) {
	case decimal.Decimal:
		return value.String()
	case decimal.NullDecimal:
		if !value.Valid {
			return constant.Empty
		}

		return value.Decimal.String()
	}

	return nil
}

func isMoney(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return false
	}

	if amount.IsNegative() || amount.GreaterThanOrEqual(maxMoney) || !amount.Equal(amount.Round(moneyScale)) {
		return false
	}

	return field.Param() != moneyPositive || !amount.IsZero()
}

// Validate decodes a JSON body into data and validates it.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
