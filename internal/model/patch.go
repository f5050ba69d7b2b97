package model

import (
	"bytes"
	"encoding/json"
)

// Optional remembers whether a JSON field was present at all.
// An explicit null sets the field to the zero value of T.
type Optional[T any] struct {
	Set   bool
	Value T
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Value: value}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

/* Тело PATCH запроса: применяются только присланные поля */
type UserPatch struct {
	FirstName   Optional[string]  `json:"first_name"`
	LastName    Optional[string]  `json:"last_name"`
	Email       Optional[string]  `json:"email"`
	PhoneNumber Optional[*string] `json:"phone_number"`
}

func (patch UserPatch) Empty() bool {
	return !(patch.FirstName.Set || patch.LastName.Set || patch.Email.Set || patch.PhoneNumber.Set)
}

// Apply returns fields with the supplied values of the patch laid over them.
func (patch UserPatch) Apply(fields UserFields) UserFields {
	if patch.FirstName.Set {
		fields.FirstName = patch.FirstName.Value
	}
	if patch.LastName.Set {
		fields.LastName = patch.LastName.Value
	}
	if patch.Email.Set {
		fields.Email = patch.Email.Value
	}
	if patch.PhoneNumber.Set {
		fields.PhoneNumber = patch.PhoneNumber.Value
	}
	return fields
}
