package services

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// DateLayout is the accepted format for invoice dates.
const DateLayout = "2006-01-02"

var draftValidator = newDraftValidator()

var requiredMessages = map[string]string{
	"vendor":        "Vendor is required",
	"address":       "Address is required",
	"invoiceNumber": "Invoice Number is required",
	"invoiceDate":   "Invoice Date is required",
	"totalAmount":   "Total Amount is required",
	"lineAmount":    "Line Amount is required",
	"department":    "Department is required",
	"account":       "Account is required",
	"location":      "Location is required",
	"description":   "Description is required",
}

func newDraftValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so error keys match form paths.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	must(v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseAmount(fl.Field().String())
		return err == nil
	}))
	must(v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DateLayout, strings.TrimSpace(fl.Field().String()))
		return err == nil
	}))
	must(v.RegisterValidation("catalog", func(fl validator.FieldLevel) bool {
		return domain.CatalogContains(fl.Param(), fl.Field().String())
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// ValidateDraft checks the whole draft and returns one message per failing
// field path. An empty result means the draft is valid.
func ValidateDraft(draft domain.InvoiceDraft) domain.FieldErrors {
	errs := domain.FieldErrors{}
	err := draftValidator.Struct(draft)
	if err == nil {
		return errs
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		errs["draft"] = err.Error()
		return errs
	}
	for _, fe := range validationErrs {
		errs[fieldPath(fe.Namespace())] = messageFor(fe)
	}
	return errs
}

// fieldPath strips the root struct name: "InvoiceDraft.expenses[0].account" -> "expenses[0].account".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if msg, ok := requiredMessages[fe.Field()]; ok {
			return msg
		}
		return fe.Field() + " is required"
	case "decimal":
		return "Invalid amount"
	case "isodate":
		return "Invalid date"
	case "catalog":
		return "Unknown " + fe.Param()
	case "min":
		return "At least one expense line is required"
	}
	return "Invalid value"
}
