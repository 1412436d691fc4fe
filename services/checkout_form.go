package services

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"gummy-store/models"

	"github.com/go-playground/validator/v10"
)

var (
	emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigit   = regexp.MustCompile(`\D`)
)

// requiredMessages and invalidMessages are the inline messages shown under
// each field, for a blank value and a malformed one.
var requiredMessages = map[string]string{
	"fullName": "Nome completo é obrigatório",
	"phone":    "Telefone é obrigatório",
	"email":    "E-mail é obrigatório",
	"cep":      "CEP é obrigatório",
	"state":    "Estado é obrigatório",
	"city":     "Cidade é obrigatória",
	"street":   "Rua/Avenida é obrigatória",
	"number":   "Número é obrigatório",
}

var invalidMessages = map[string]string{
	"phone": "Telefone inválido",
	"email": "E-mail inválido",
	"cep":   "CEP inválido",
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterValidation("mindigits", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(OnlyDigits(fl.Field().String())) >= n
	})
	v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(OnlyDigits(fl.Field().String())) == n
	})
	v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(strings.TrimSpace(fl.Field().String()))
	})

	return v
}

func OnlyDigits(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}

// ValidateCheckoutForm returns one message per invalid field. The form is
// valid iff the result is empty.
func ValidateCheckoutForm(form models.CheckoutForm) models.FieldErrors {
	fields := models.FieldErrors{}

	err := formValidator.Struct(form)
	if err == nil {
		return fields
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["form"] = err.Error()
		return fields
	}

	for _, fe := range verrs {
		name := fe.Field()
		if _, seen := fields[name]; seen {
			continue
		}
		messages := invalidMessages
		if fe.Tag() == "notblank" {
			messages = requiredMessages
		}
		msg, ok := messages[name]
		if !ok {
			msg = "Campo inválido"
		}
		fields[name] = msg
	}
	return fields
}

// FormatPhone masks up to 11 digits as "(11) 98765 4321".
func FormatPhone(value string) string {
	d := OnlyDigits(value)
	if len(d) > 11 {
		d = d[:11]
	}

	switch {
	case len(d) == 0:
		return ""
	case len(d) <= 2:
		return "(" + d
	case len(d) <= 7:
		return "(" + d[:2] + ") " + d[2:]
	default:
		return "(" + d[:2] + ") " + d[2:7] + " " + d[7:]
	}
}

// FormatCEP masks up to 8 digits as "01310-100".
func FormatCEP(value string) string {
	d := OnlyDigits(value)
	if len(d) > 8 {
		d = d[:8]
	}
	if len(d) <= 5 {
		return d
	}
	return d[:5] + "-" + d[5:]
}

func MaskCheckoutForm(form models.CheckoutForm) models.CheckoutForm {
	form.FullName = strings.TrimSpace(form.FullName)
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = FormatPhone(form.Phone)
	form.CEP = FormatCEP(form.CEP)
	form.State = strings.TrimSpace(form.State)
	form.City = strings.TrimSpace(form.City)
	form.Street = strings.TrimSpace(form.Street)
	form.Number = strings.TrimSpace(form.Number)
	form.Complement = strings.TrimSpace(form.Complement)
	return form
}

// FullAddress renders "street, number[, complement] - city/state - CEP: cep".
func FullAddress(form models.CheckoutForm) string {
	var b strings.Builder
	b.WriteString(form.Street)
	b.WriteString(", ")
	b.WriteString(form.Number)
	if form.Complement != "" {
		b.WriteString(", ")
		b.WriteString(form.Complement)
	}
	b.WriteString(" - ")
	b.WriteString(form.City)
	b.WriteString("/")
	b.WriteString(form.State)
	b.WriteString(" - CEP: ")
	b.WriteString(form.CEP)
	return b.String()
}
