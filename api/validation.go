package api

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

func init() {
	// 校验错误中使用 json 字段名
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	}
}

// optionalAmount 可选金额，接受字符串或数字，缺省、null 或空字符串视为 0
type optionalAmount struct {
	decimal.Decimal
}

func (a *optionalAmount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	if s == "" || s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	a.Decimal = d
	return nil
}

// bindJSON 绑定并校验请求体，失败时返回第一条校验信息
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		field, message := validationMessage(err)
		FieldError(c, field, message)
		return false
	}
	return true
}

// validationMessage 提取第一条校验错误
func validationMessage(err error) (field, message string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fe.Field(), fieldErrorMessage(fe)
	}
	return "", "Invalid request body: " + SafeErrorMessage(err, "malformed JSON")
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// requireText 去除首尾空白后不能为空
func requireText(c *gin.Context, field, value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		FieldError(c, field, fmt.Sprintf("%s is required", field))
		return "", false
	}
	return value, true
}

// 金额列为 DECIMAL(12,2)
var maxAmount = decimal.New(1, 10)

// requireStorable 金额最多两位小数且小于 1e10
func requireStorable(c *gin.Context, field string, amount decimal.Decimal) bool {
	if amount.Exponent() < -2 && !amount.Equal(amount.Truncate(2)) {
		FieldError(c, field, fmt.Sprintf("%s must have at most 2 decimal places", field))
		return false
	}
	if amount.Abs().GreaterThanOrEqual(maxAmount) {
		FieldError(c, field, fmt.Sprintf("%s must be less than 10000000000", field))
		return false
	}
	return true
}

// requirePositive 消费金额必须大于 0
func requirePositive(c *gin.Context, field string, amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		FieldError(c, field, fmt.Sprintf("%s must be greater than 0", field))
		return false
	}
	return requireStorable(c, field, amount)
}

// requireNonNegative 预算不能为负
func requireNonNegative(c *gin.Context, field string, amount decimal.Decimal) bool {
	if amount.IsNegative() {
		FieldError(c, field, fmt.Sprintf("%s cannot be negative", field))
		return false
	}
	return requireStorable(c, field, amount)
}

// parseID 解析路径中的 ID
func parseID(c *gin.Context, param, what string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, fmt.Sprintf("Invalid %s id", what))
		return 0, false
	}
	return uint(id), true
}
