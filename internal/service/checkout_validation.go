package service

import (
	"reflect"
	"strings"

	"github.com/avc/storefront-gateway/internal/domain"
	validatorv10 "github.com/go-playground/validator/v10"
)

// Сообщения об ошибках полей формы
var contactFieldMessages = map[string]string{
	"first_name": "First name is required.",
	"last_name":  "Last name is required.",
	"email":      "A valid email address is required.",
	"phone":      "A valid 10-digit phone number is required.",
}

// contactForm контактные поля черновика, подлежащие проверке
type contactForm struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone" validate:"phone10"`
	Guest     bool   `json:"-"`
}

// NewContactValidator возвращает валидатор контактных данных
func NewContactValidator() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// ошибки регистрации возможны только при пустом теге
	_ = v.RegisterValidation("phone10", func(fl validatorv10.FieldLevel) bool {
		_, ok := NormalizePhone(fl.Field().String())
		return ok
	})

	// имя, фамилия и email обязательны только для гостей
	v.RegisterStructValidation(contactStructValidation, contactForm{})

	return v
}

func contactStructValidation(sl validatorv10.StructLevel) {
	form := sl.Current().Interface().(contactForm)
	if !form.Guest {
		return
	}

	if strings.TrimSpace(form.FirstName) == "" {
		sl.ReportError(form.FirstName, "first_name", "FirstName", "required", "")
	}
	if strings.TrimSpace(form.LastName) == "" {
		sl.ReportError(form.LastName, "last_name", "LastName", "required", "")
	}
	if err := sl.Validator().Var(strings.TrimSpace(form.Email), "required,email"); err != nil {
		sl.ReportError(form.Email, "email", "Email", "email", "")
	}
}

// NormalizePhone оставляет только цифры и отбрасывает код страны 1
func NormalizePhone(phone string) (string, bool) {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	return digits, len(digits) == 10
}

// ValidateContact проверяет контактные поля черновика
func ValidateContact(v *validatorv10.Validate, draft domain.DraftOrder, guest bool) error {
	form := contactForm{
		FirstName: draft.FirstName,
		LastName:  draft.LastName,
		Email:     draft.Email,
		Phone:     draft.Phone,
		Guest:     guest,
	}

	err := v.Struct(form)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			fields[fe.Field()] = contactFieldMessages[fe.Field()]
		}
	} else {
		fields["form"] = err.Error()
	}
	return domain.NewValidationError(fields)
}
