package domain

import (
	"fmt"
	"net/url"
	"unicode/utf8"
)

// Field limits, counted in characters.
const (
	MaxNameLen         = 100
	MaxDescriptionLen  = 500
	MaxIconLen         = 50
	MaxStartCommandLen = 500
)

// Validate checks a create input against the field rules.
func (in CreateInput) Validate() error {
	ve := &ValidationError{}
	in.validateInto(ve, "")
	return ve.errOrNil()
}

func (in CreateInput) validateInto(ve *ValidationError, prefix string) {
	checkName(ve, prefix+"name", in.Name)
	checkURL(ve, prefix+"url", in.URL)
	checkMax(ve, prefix+"description", in.Description, MaxDescriptionLen)
	checkMax(ve, prefix+"icon", in.Icon, MaxIconLen)
	checkMax(ve, prefix+"startCommand", in.StartCommand, MaxStartCommandLen)
}

// Validate checks only the fields present in the partial update.
func (in UpdateInput) Validate() error {
	ve := &ValidationError{}
	if in.Name.Set {
		checkName(ve, "name", in.Name.Value)
	}
	if in.URL.Set {
		checkURL(ve, "url", in.URL.Value)
	}
	if in.Description.Set {
		checkMax(ve, "description", in.Description.Value, MaxDescriptionLen)
	}
	if in.Icon.Set {
		checkMax(ve, "icon", in.Icon.Value, MaxIconLen)
	}
	if in.StartCommand.Set {
		checkMax(ve, "startCommand", in.StartCommand.Value, MaxStartCommandLen)
	}
	return ve.errOrNil()
}

// ValidateBatch checks every import candidate and reports issues as apps[i].field.
func ValidateBatch(candidates []CreateInput) error {
	ve := &ValidationError{}
	for i, c := range candidates {
		c.validateInto(ve, fmt.Sprintf("apps[%d].", i))
	}
	return ve.errOrNil()
}

func checkName(ve *ValidationError, field, name string) {
	n := utf8.RuneCountInString(name)
	switch {
	case n == 0:
		ve.add(field, "Name is required")
	case n > MaxNameLen:
		ve.add(field, fmt.Sprintf("Name must be %d characters or less", MaxNameLen))
	}
}

func checkURL(ve *ValidationError, field, raw string) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || (u.Host == "" && u.Opaque == "") {
		ve.add(field, "Must be a valid URL")
	}
}

func checkMax(ve *ValidationError, field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		ve.add(field, fmt.Sprintf("must be %d characters or less", max))
	}
}
