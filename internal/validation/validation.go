package validation

import (
	"fmt"
	"strconv"
	"strings"
)

// Errors collects messages in the order the checks ran; forms surface only
// the first one.
type Errors struct {
	msgs []string
}

func (e *Errors) Empty() bool { return len(e.msgs) == 0 }

func (e *Errors) First() string {
	if len(e.msgs) == 0 {
		return ""
	}
	return e.msgs[0]
}

func (e *Errors) Add(msg string) { e.msgs = append(e.msgs, msg) }

// Basic validators

// ExactLen rejects values that are not exactly n characters long.
func ExactLen(e *Errors, label, value string, n int) {
	if len(value) != n {
		e.Add(fmt.Sprintf("%s must be exactly %d characters.", label, n))
	}
}

// MaxLen rejects values longer than limit. Empty values pass; required-ness
// is a separate check.
func MaxLen(e *Errors, label, value string, limit int) {
	if len(value) > limit {
		e.Add(fmt.Sprintf("%s cannot exceed %d characters.", label, limit))
	}
}

// Numeric rejects values that do not parse as an integer.
func Numeric(e *Errors, label, value string) {
	if _, err := strconv.Atoi(value); err != nil {
		e.Add(fmt.Sprintf("%s must be numeric.", label))
	}
}

// AllPresent rejects the submission when any field is empty after trimming.
func AllPresent(e *Errors, values ...string) {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			e.Add("All fields are required.")
			return
		}
	}
}

// OneOf rejects a non-empty value that is not in the allowed set.
func OneOf(e *Errors, label, value string, allowed ...string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	e.Add(fmt.Sprintf("%s must be one of: %s.", label, strings.Join(allowed, ", ")))
}
