package service

import (
	"errors"
	"strings"

	"github.com/TooLazyToCreate/account-service/internal/model"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"
)

// normalizeFields trims the payload, lower-cases the email, formats the phone
// number as E.164 and validates the result.
func normalizeFields(fields model.UserFields, region string) (model.UserFields, error) {
	fields.FirstName = strings.TrimSpace(fields.FirstName)
	fields.LastName = strings.TrimSpace(fields.LastName)
	fields.Email = strings.ToLower(strings.TrimSpace(fields.Email))
	if fields.PhoneNumber != nil {
		phone := strings.TrimSpace(*fields.PhoneNumber)
		if phone == "" {
			fields.PhoneNumber = nil
		} else {
			fields.PhoneNumber = &phone
		}
	}

	err := validation.ValidateStruct(&fields,
		validation.Field(&fields.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&fields.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&fields.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&fields.PhoneNumber, validation.By(phoneRule(region))),
	)
	if err != nil {
		return fields, &model.ValidationError{Err: err}
	}

	if fields.PhoneNumber != nil {
		formatted, err := formatPhone(*fields.PhoneNumber, region)
		if err != nil {
			return fields, &model.ValidationError{Err: validation.Errors{"phone_number": err}}
		}
		fields.PhoneNumber = &formatted
	}
	return fields, nil
}

var errInvalidPhone = errors.New("must be a valid phone number")

func phoneRule(region string) validation.RuleFunc {
	return func(value interface{}) error {
		phone, _ := value.(*string)
		if phone == nil {
			return nil
		}
		_, err := formatPhone(*phone, region)
		return err
	}
}

func formatPhone(raw, region string) (string, error) {
	number, err := phonenumbers.Parse(raw, region)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return "", errInvalidPhone
	}
	return phonenumbers.Format(number, phonenumbers.E164), nil
}
