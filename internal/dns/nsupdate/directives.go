package nsupdate

import "github.com/haukened/rr-nsupdate/internal/dns/domain"

// readLine reads one line: a directive, or nothing when the line is blank or a comment.
// It always consumes the line terminator on success.
func (c *cursor) readLine() (domain.Directive, error) {
	c.skipSpaces()
	if c.atLineEnd() {
		return nil, c.endLine()
	}
	d, err := c.directive()
	if err != nil {
		return nil, err
	}
	if err := c.endLine(); err != nil {
		return nil, err
	}
	return d, nil
}

func (c *cursor) directive() (domain.Directive, error) {
	line := c.line
	start := c.pos
	switch c.word() {
	case "send":
		return domain.Send{Line: line}, nil
	case "update":
		if err := c.spaces("update"); err != nil {
			return nil, err
		}
		return c.update(line)
	}
	return nil, c.errAt(start, ErrStructural, "directive", "send", "update")
}

func (c *cursor) update(line int) (domain.Directive, error) {
	start := c.pos
	switch c.word() {
	case "add":
		if err := c.spaces("add"); err != nil {
			return nil, err
		}
		return c.add(line)
	case "delete":
		if err := c.spaces("delete"); err != nil {
			return nil, err
		}
		return c.del(line)
	case "":
		return nil, c.errEOI(ErrStructural, "update", "add", "delete")
	}
	return nil, c.errAt(start, ErrStructural, "update", "add", "delete")
}

// add reads "domain ttl class record".
func (c *cursor) add(line int) (domain.Directive, error) {
	name, err := c.domainName("domain")
	if err != nil {
		return nil, err
	}
	if err := c.spaces("add"); err != nil {
		return nil, err
	}
	ttl, err := c.ttl()
	if err != nil {
		return nil, err
	}
	if err := c.spaces("add"); err != nil {
		return nil, err
	}
	class, err := c.class()
	if err != nil {
		return nil, err
	}
	if err := c.spaces("add"); err != nil {
		return nil, err
	}
	rd, prio, err := c.record()
	if err != nil {
		return nil, err
	}
	return domain.UpdateAdd{
		Name:     name,
		TTL:      ttl,
		Class:    class,
		Priority: prio,
		Record:   rd,
		Line:     line,
	}, nil
}

// del reads "domain type"; deletion addresses a name and type pair only.
func (c *cursor) del(line int) (domain.Directive, error) {
	name, err := c.domainName("domain")
	if err != nil {
		return nil, err
	}
	if err := c.spaces("delete"); err != nil {
		return nil, err
	}
	t, err := c.recordType()
	if err != nil {
		return nil, err
	}
	return domain.UpdateDelete{Name: name, Type: t, Line: line}, nil
}
