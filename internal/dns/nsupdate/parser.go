// Package nsupdate parses nsupdate-style dynamic update scripts into a typed document.
//
// A script holds one directive per line:
//
//	send
//	update add <domain> <ttl> IN <type> [priority] <content>
//	update delete <domain> <type>
//
// Blank lines and ';' comments are ignored. Domains must be dot-terminated.
// The supported record types are A, AAAA, CNAME, TXT, SRV, MX, NS, SSHFP and URI.
//
// Parsing is pure: no I/O, no shared state, and linear in the input length.
// The first violation aborts the parse with a *ParseError; there is no partial result.
package nsupdate

import "github.com/haukened/rr-nsupdate/internal/dns/domain"

// Parse parses a whole script.
func Parse(input string) (domain.Document, error) {
	c := newCursor(input)
	var doc domain.Document
	for !c.eof() {
		d, err := c.readLine()
		if err != nil {
			return domain.Document{}, err
		}
		if d != nil {
			doc.Directives = append(doc.Directives, d)
		}
	}
	return doc, nil
}

// ParseBytes is Parse for a byte slice.
func ParseBytes(input []byte) (domain.Document, error) {
	return Parse(string(input))
}

// ParseRecord parses a single "<type> [priority] <content>" fragment, as found after
// the class of an add directive. The returned priority is nil when none was written.
func ParseRecord(text string) (domain.RData, *uint16, error) {
	c := newCursor(text)
	c.skipSpaces()
	rd, prio, err := c.record()
	if err != nil {
		return nil, nil, err
	}
	if err := c.endInput("record"); err != nil {
		return nil, nil, err
	}
	return rd, prio, nil
}
