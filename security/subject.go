package security

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidSubject is returned for an empty subject or an out-of-range numeric one.
var ErrInvalidSubject = errors.New("invalid subject")

// SubjectKind discriminates the Subject variants.
type SubjectKind int

const (
	// SubjectID identifies a principal by numeric id. Issued tokens always use it.
	SubjectID SubjectKind = iota + 1
	// SubjectEmail identifies a principal by normalized email.
	SubjectEmail
)

// Subject is the parsed sub claim: exactly one of ID or Email is meaningful,
// selected by Kind.
type Subject struct {
	Kind  SubjectKind
	ID    int64
	Email string
}

// ParseSubject classifies sub. An all-digit string is a SubjectID, anything
// else is a SubjectEmail normalized to trimmed lowercase.
func ParseSubject(sub string) (Subject, error) {
	if sub == "" {
		return Subject{}, ErrInvalidSubject
	}

	if isDigits(sub) {
		id, err := strconv.ParseInt(sub, 10, 64)
		if err != nil {
			return Subject{}, ErrInvalidSubject
		}
		return Subject{Kind: SubjectID, ID: id}, nil
	}

	email := strings.ToLower(strings.TrimSpace(sub))
	if email == "" {
		return Subject{}, ErrInvalidSubject
	}
	return Subject{Kind: SubjectEmail, Email: email}, nil
}

// IDSubject returns the sub claim value for a numeric principal id.
func IDSubject(id int64) string {
	return strconv.FormatInt(id, 10)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
