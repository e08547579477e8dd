// Package reading generates palm readings from palm features and user context.
package reading

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidContext is returned when a user context field is missing or unknown.
var ErrInvalidContext = errors.New("invalid user context")

// AgeBracket is the user's life stage.
type AgeBracket string

const (
	AgeUnder18 AgeBracket = "under18"
	Age18To25  AgeBracket = "18-25"
	Age26To35  AgeBracket = "26-35"
	Age36To45  AgeBracket = "36-45"
	Age46To60  AgeBracket = "46-60"
	AgeAbove60 AgeBracket = "above60"
)

// AgeBrackets lists every bracket in ascending order.
var AgeBrackets = []AgeBracket{AgeUnder18, Age18To25, Age26To35, Age36To45, Age46To60, AgeAbove60}

// Gender of the user, used to append gender-specific sentences.
type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderUnspecified Gender = "unspecified"
)

// Domain is a life area covered by a reading. The user's focus area is also a Domain.
type Domain string

const (
	Career    Domain = "career"
	Wealth    Domain = "wealth"
	Health    Domain = "health"
	Love      Domain = "love"
	Social    Domain = "social"
	Wisdom    Domain = "wisdom"
	Potential Domain = "potential"
)

// Domains lists every domain in display order.
var Domains = []Domain{Career, Wealth, Health, Love, Social, Wisdom, Potential}

// UserContext is supplied alongside the image and fixed for one analysis.
type UserContext struct {
	Age    AgeBracket `json:"age"`
	Gender Gender     `json:"gender"`
	Focus  Domain     `json:"focusArea"`
}

// ParseAgeBracket validates an age bracket string.
func ParseAgeBracket(s string) (AgeBracket, error) {
	for _, a := range AgeBrackets {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: unknown age bracket %q", ErrInvalidContext, s)
}

// ParseGender validates a gender string. "other" is treated as unspecified.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(s) {
	case "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	case "unspecified", "other":
		return GenderUnspecified, nil
	}
	return "", fmt.Errorf("%w: unknown gender %q", ErrInvalidContext, s)
}

// ParseDomain validates a focus area string.
func ParseDomain(s string) (Domain, error) {
	for _, d := range Domains {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: unknown focus area %q", ErrInvalidContext, s)
}

// ParseUserContext validates all three form fields. Every field is required.
func ParseUserContext(age, gender, focus string) (UserContext, error) {
	var errs []error

	a, err := ParseAgeBracket(strings.TrimSpace(age))
	if err != nil {
		errs = append(errs, err)
	}
	g, err := ParseGender(strings.TrimSpace(gender))
	if err != nil {
		errs = append(errs, err)
	}
	d, err := ParseDomain(strings.TrimSpace(focus))
	if err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return UserContext{}, errors.Join(errs...)
	}
	return UserContext{Age: a, Gender: g, Focus: d}, nil
}

// Validate reports whether every field holds a known value.
func (u UserContext) Validate() error {
	_, err := ParseUserContext(string(u.Age), string(u.Gender), string(u.Focus))
	return err
}
