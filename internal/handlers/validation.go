package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// fieldLabels maps struct field names to the labels used in validation
// messages.
var fieldLabels = map[string]string{
	"FirstName":        "First name",
	"LastName":         "Last name",
	"Email":            "Email",
	"Phone":            "Phone number",
	"PhoneNumber":      "Phone number",
	"Password":         "Password",
	"SubDomain":        "Subdomain",
	"OrganizationName": "Organization name",
	"Title":            "Title",
	"Name":             "Name",
	"Status":           "Status",
	"ProjectID":        "Project",
	"AuthorUserID":     "Author",
	"AssignedIDs":      "Assigned users",
}

// bindingErrorMessages turns a binding failure into the full list of
// violated field rules, one message per field.
func bindingErrorMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid request body"}
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fieldMessage(fe))
	}
	return messages
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return "Invalid email format"
	case "min":
		if fe.Field() == "Phone" || fe.Field() == "PhoneNumber" {
			return fmt.Sprintf("%s must be at least %s digits", label, fe.Param())
		}
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s must contain at least %s entry", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
