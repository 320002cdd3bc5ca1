package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storeadmin/internal/admin"
	"storeadmin/internal/apperror"
	"storeadmin/internal/models"
)

const requiredMessage = "Please fill out this field."

var (
	itemNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\s',.!&()#-]+$`)
	amountPattern   = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// fieldMessages maps a field and a failed rule to the message shown next to
// the form field.
var fieldMessages = map[string]map[string]string{
	"itemName":     {"itemname": "Invalid Item name"},
	"itemPrice":    {"amount": "Invalid Item price"},
	"itemDiscount": {"amount": "Invalid Item discount"},
	"available":    {"boolean": "Invalid availability"},
	"productId":    {"objectid": "Invalid id", "optionalid": "Invalid id"},
	"orderId":      {"objectid": "Invalid id"},
	"orderStatus":  {"orderstatus": admin.InvalidStatusMessage()},
	"email":        {"email": "Please enter a valid email"},
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	mustRegister("itemname", func(fl validator.FieldLevel) bool {
		return itemNamePattern.MatchString(fl.Field().String())
	})
	mustRegister("amount", func(fl validator.FieldLevel) bool {
		return amountPattern.MatchString(fl.Field().String())
	})
	mustRegister("objectid", func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(fl.Field().String())
	})
	mustRegister("optionalid", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || value == "null" || primitive.IsValidObjectID(value)
	})
	mustRegister("orderstatus", func(fl validator.FieldLevel) bool {
		return models.OrderStatus(fl.Field().String()).Valid()
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// validateRequest runs the struct rules and reports every violation as a
// field error.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperror.Wrap(apperror.KindInternal, err, "request validation failed")
	}

	fields := make([]apperror.FieldError, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields = append(fields, apperror.FieldError{
			Field:        fieldError.Field(),
			ErrorMessage: messageFor(fieldError),
		})
	}
	return apperror.Validation(fields...)
}

func messageFor(fieldError validator.FieldError) string {
	if fieldError.Tag() == "required" {
		return requiredMessage
	}
	if messages, ok := fieldMessages[fieldError.Field()]; ok {
		if msg, ok := messages[fieldError.Tag()]; ok {
			return msg
		}
	}
	return fmt.Sprintf("%s is invalid", fieldError.Field())
}

// bindJSON decodes the body and applies the validation rules.
func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperror.Wrap(apperror.KindValidation, err, "Invalid request body")
	}
	return validateRequest(req)
}

// formValue accepts a JSON string, number or boolean and keeps its trimmed
// text, so form posts and typed JSON clients validate the same way.
type formValue string

func (v *formValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*v = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = formValue(strings.TrimSpace(s))
		return nil
	}

	var scalar any
	if err := json.Unmarshal(trimmed, &scalar); err != nil {
		return err
	}
	switch scalar.(type) {
	case float64, bool:
		*v = formValue(trimmed)
		return nil
	default:
		return fmt.Errorf("expected a string, number or boolean, got %s", trimmed)
	}
}

func (v formValue) String() string {
	return string(v)
}

// sizeList accepts either a JSON array or a comma-joined string.
type sizeList []string

func (s *sizeList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*s = sizeList{}
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var joined string
		if err := json.Unmarshal(trimmed, &joined); err != nil {
			return err
		}
		out := sizeList{}
		for _, part := range strings.Split(joined, ",") {
			if size := strings.TrimSpace(part); size != "" {
				out = append(out, size)
			}
		}
		*s = out
		return nil
	}

	var values []string
	if err := json.Unmarshal(trimmed, &values); err != nil {
		return err
	}
	*s = values
	return nil
}

// parseOptionalID maps the "null" sentinel and the empty string to nil.
func parseOptionalID(field, raw string) (*primitive.ObjectID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	id, err := parseID(field, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseID(field, raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, apperror.Validation(apperror.FieldError{
			Field:        field,
			ErrorMessage: fieldMessages[field]["objectid"],
		})
	}
	return id, nil
}
