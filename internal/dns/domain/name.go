package domain

import "strings"

// Name is a fully-qualified domain name as written in an update script.
// Every label is followed by a dot in its textual form, including the last one.
type Name struct {
	Labels []string
}

// NewName builds a Name from its labels.
func NewName(labels ...string) Name {
	return Name{Labels: labels}
}

// String returns the dot-terminated presentation form of the name, preserving case.
func (n Name) String() string {
	if len(n.Labels) == 0 {
		return ""
	}
	var b strings.Builder
	for _, l := range n.Labels {
		b.WriteString(l)
		b.WriteByte('.')
	}
	return b.String()
}

// IsZero reports whether the name has no labels.
func (n Name) IsZero() bool {
	return len(n.Labels) == 0
}

// Equal reports whether two names have identical labels, compared case-insensitively.
func (n Name) Equal(o Name) bool {
	if len(n.Labels) != len(o.Labels) {
		return false
	}
	for i := range n.Labels {
		if !strings.EqualFold(n.Labels[i], o.Labels[i]) {
			return false
		}
	}
	return true
}
