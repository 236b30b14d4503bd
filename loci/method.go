package loci

import (
	"context"
	"fmt"
	"strings"
)

// Method names a strategy for deciding which markers are independent.
type Method int

const (
	MethodDistance Method = iota
	MethodLDClump
	MethodConditional
)

var methodNames = map[Method]string{
	MethodDistance:    "distance",
	MethodLDClump:     "clumping",
	MethodConditional: "conditional",
}

func (m Method) String() string {
	if name, exists := methodNames[m]; exists {
		return name
	}

	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod accepts the names printed by Method.String, case-insensitively.
// "ldclump" is accepted as an alias for clumping.
func ParseMethod(name string) (Method, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "ldclump" {
		return MethodLDClump, nil
	}

	for m, n := range methodNames {
		if n == name {
			return m, nil
		}
	}

	return 0, &ValidationError{Field: "method", Reason: fmt.Sprintf("%q is not one of distance, clumping, conditional", name)}
}

// Selector chooses lead markers. Implementations must not modify the input
// slice and must be deterministic for identical input.
type Selector interface {
	Method() Method
	Select(ctx context.Context, markers []Marker) ([]Marker, error)
}

// ConditionalSelector stands in for conditional-analysis based selection.
type ConditionalSelector struct {
	R2 float64
}

func (ConditionalSelector) Method() Method { return MethodConditional }

func (ConditionalSelector) Select(context.Context, []Marker) ([]Marker, error) {
	return nil, &NotImplementedError{Method: MethodConditional}
}
