package domain

// Directive is one parsed instruction of an update script: Send, UpdateAdd or UpdateDelete.
type Directive interface {
	// SourceLine is the 1-based line the directive was read from.
	SourceLine() int
	directive()
}

// Send flushes the updates queued since the previous send.
type Send struct {
	Line int
}

// UpdateAdd adds a record to a name.
// Priority is nil unless the script placed one before an MX, SRV or URI payload.
type UpdateAdd struct {
	Name     Name
	TTL      uint32
	Class    RRClass
	Priority *uint16
	Record   RData
	Line     int
}

// UpdateDelete removes every record of one type from a name.
type UpdateDelete struct {
	Name Name
	Type RRType
	Line int
}

func (s Send) SourceLine() int         { return s.Line }
func (u UpdateAdd) SourceLine() int    { return u.Line }
func (u UpdateDelete) SourceLine() int { return u.Line }

func (Send) directive()         {}
func (UpdateAdd) directive()    {}
func (UpdateDelete) directive() {}

// PriorityOrZero returns the priority, treating an absent one as zero.
func (u UpdateAdd) PriorityOrZero() uint16 {
	if u.Priority == nil {
		return 0
	}
	return *u.Priority
}

// Type returns the record type being added.
func (u UpdateAdd) Type() RRType {
	if u.Record == nil {
		return 0
	}
	return u.Record.Type()
}

// Document is a parsed update script: its directives in source order.
type Document struct {
	Directives []Directive
}

// Len returns the number of directives.
func (d Document) Len() int {
	return len(d.Directives)
}

// HasSend reports whether the document contains at least one send.
func (d Document) HasSend() bool {
	for _, dir := range d.Directives {
		if _, ok := dir.(Send); ok {
			return true
		}
	}
	return false
}
