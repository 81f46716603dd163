package exercise

import (
	"fmt"
	"strings"
)

// Type identifies the movement being analyzed. The zero value means no
// exercise has been selected.
type Type string

const (
	RegularDeadlift  Type = "regular_deadlift"
	SumoDeadlift     Type = "sumo_deadlift"
	Squat            Type = "squat"
	RomanianDeadlift Type = "romanian_deadlift"
	ZercherSquats    Type = "zercher_squats"
	FrontSquat       Type = "front_squat"
)

// All lists the exercise types in the order the selector shows them
var All = []Type{
	RegularDeadlift,
	SumoDeadlift,
	Squat,
	RomanianDeadlift,
	ZercherSquats,
	FrontSquat,
}

var labels = map[Type]string{
	RegularDeadlift:  "Regular Deadlift",
	SumoDeadlift:     "Sumo Deadlift",
	Squat:            "Squat",
	RomanianDeadlift: "Romanian Deadlift",
	ZercherSquats:    "Zercher Squats",
	FrontSquat:       "Front Squats",
}

// Parse returns the exercise type for a wire value
func Parse(s string) (Type, error) {
	t := Type(strings.TrimSpace(s))
	if !t.Valid() {
		return "", fmt.Errorf("invalid exercise type: %q (must be one of: %s)", s, strings.Join(Names(), ", "))
	}
	return t, nil
}

// Valid reports whether t belongs to the fixed set
func (t Type) Valid() bool {
	_, ok := labels[t]
	return ok
}

// IsSet reports whether a type has been chosen
func (t Type) IsSet() bool {
	return t != ""
}

// Label returns the human readable name shown in selectors
func (t Type) Label() string {
	if label, ok := labels[t]; ok {
		return label
	}
	return "Select exercise type"
}

func (t Type) String() string {
	return string(t)
}

// Names returns the wire values of every exercise type
func Names() []string {
	names := make([]string, 0, len(All))
	for _, t := range All {
		names = append(names, string(t))
	}
	return names
}

// Index returns the position of t in All, or -1
func Index(t Type) int {
	for i, candidate := range All {
		if candidate == t {
			return i
		}
	}
	return -1
}
