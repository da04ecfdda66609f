// Package insurance holds the customer, feature and prediction types shared by
// the model adapter, the store and the HTTP surface.
package insurance

import (
	"math"
	"strings"
)

// Sex is the form's sex choice.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Code returns the model encoding: male=1, anything else 0.
func (s Sex) Code() int {
	if s == SexMale {
		return 1
	}
	return 0
}

// Valid reports whether s is one of the form's choices.
func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// SmokerStatus is the form's smoker choice.
type SmokerStatus string

const (
	SmokerYes SmokerStatus = "yes"
	SmokerNo  SmokerStatus = "no"
)

// Code returns the model encoding: yes=1, anything else 0.
func (s SmokerStatus) Code() int {
	if s == SmokerYes {
		return 1
	}
	return 0
}

// Valid reports whether s is one of the form's choices.
func (s SmokerStatus) Valid() bool {
	return s == SmokerYes || s == SmokerNo
}

// Input ranges enforced by the form.
const (
	MinAge      = 18
	MaxAge      = 65
	MinBMI      = 10.0
	MaxBMI      = 100.0
	MinChildren = 0
	MaxChildren = 5
)

// CustomerInput is one form submission.
type CustomerInput struct {
	Name     string       `json:"name"`
	Age      int          `json:"age"`
	Sex      Sex          `json:"sex"`
	BMI      float64      `json:"bmi"`
	Children int          `json:"children"`
	Smoker   SmokerStatus `json:"smoker"`
}

// DefaultCustomerInput returns the values the form starts with.
func DefaultCustomerInput() CustomerInput {
	return CustomerInput{
		Age:      30,
		Sex:      SexMale,
		BMI:      25.0,
		Children: 0,
		Smoker:   SmokerYes,
	}
}

// TrimmedName returns the name without surrounding whitespace.
func (c CustomerInput) TrimmedName() string {
	return strings.TrimSpace(c.Name)
}

// CheckName reports a ValidationError when the trimmed name is empty.
func (c CustomerInput) CheckName() error {
	if c.TrimmedName() == "" {
		return &ValidationError{Field: "name", Reason: "name is required"}
	}
	return nil
}

// Validate applies the name check and the form's range and choice checks.
// The name is checked first so an empty form reports the name.
func (c CustomerInput) Validate() error {
	if err := c.CheckName(); err != nil {
		return err
	}
	switch {
	case c.Age < MinAge || c.Age > MaxAge:
		return &ValidationError{Field: "age", Reason: "age must be between 18 and 65"}
	case !c.Sex.Valid():
		return &ValidationError{Field: "sex", Reason: "sex must be male or female"}
	case math.IsNaN(c.BMI) || c.BMI < MinBMI || c.BMI > MaxBMI:
		return &ValidationError{Field: "bmi", Reason: "bmi must be between 10 and 100"}
	case c.Children < MinChildren || c.Children > MaxChildren:
		return &ValidationError{Field: "children", Reason: "children must be between 0 and 5"}
	case !c.Smoker.Valid():
		return &ValidationError{Field: "smoker", Reason: "smoker must be yes or no"}
	}
	return nil
}

// Encode converts the input to the model's numeric encoding.
func (c CustomerInput) Encode() EncodedFeatures {
	return EncodedFeatures{
		Age:      c.Age,
		Sex:      c.Sex.Code(),
		BMI:      c.BMI,
		Children: c.Children,
		Smoker:   c.Smoker.Code(),
	}
}
