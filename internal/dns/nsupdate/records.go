package nsupdate

import "github.com/haukened/rr-nsupdate/internal/dns/domain"

// record reads a record keyword followed by its content.
// For MX, SRV and URI an optional priority may precede the content.
func (c *cursor) record() (domain.RData, *uint16, error) {
	t, err := c.recordType()
	if err != nil {
		return nil, nil, err
	}
	if err := c.spaces(t.String()); err != nil {
		return nil, nil, err
	}
	if t.AcceptsPriority() {
		return c.prioritized(t)
	}
	rd, err := c.content(t)
	return rd, nil, err
}

// prioritized tries "priority content" first and falls back to bare content.
// When both fail, the error that reached further into the line wins.
func (c *cursor) prioritized(t domain.RRType) (domain.RData, *uint16, error) {
	mark := c.pos
	prio, err := c.u16("priority")
	if err == nil {
		err = c.spaces("priority")
	}
	if err == nil {
		rd, cerr := c.content(t)
		if cerr == nil {
			return rd, &prio, nil
		}
		err = cerr
	}
	c.pos = mark
	rd, bare := c.content(t)
	if bare == nil {
		return rd, nil, nil
	}
	return nil, nil, furthest(err, bare)
}

// content dispatches on the record type to exactly one payload grammar.
func (c *cursor) content(t domain.RRType) (domain.RData, error) {
	switch t {
	case domain.RRTypeA:
		addr, err := c.ipv4("ip_v4")
		if err != nil {
			return nil, err
		}
		return domain.AData{Address: addr}, nil
	case domain.RRTypeAAAA:
		addr, err := c.ipv6("ip_v6")
		if err != nil {
			return nil, err
		}
		return domain.AAAAData{Address: addr}, nil
	case domain.RRTypeCNAME:
		target, err := c.domainName("domain")
		if err != nil {
			return nil, err
		}
		return domain.CNAMEData{Target: target}, nil
	case domain.RRTypeTXT:
		text, err := c.quoted("quoted_string")
		if err != nil {
			return nil, err
		}
		return domain.TXTData{Text: text}, nil
	case domain.RRTypeSRV:
		return c.srv()
	case domain.RRTypeMX:
		host, err := c.domainName("domain")
		if err != nil {
			return nil, err
		}
		return domain.MXData{Host: host}, nil
	case domain.RRTypeNS:
		host, err := c.domainName("domain")
		if err != nil {
			return nil, err
		}
		return domain.NSData{Host: host}, nil
	case domain.RRTypeSSHFP:
		return c.sshfp()
	case domain.RRTypeURI:
		return c.uri()
	}
	return nil, c.err(ErrRecordType, "record_type", recordKeywords...)
}

// srv reads "weight port target".
func (c *cursor) srv() (domain.RData, error) {
	weight, err := c.u16("weight")
	if err != nil {
		return nil, err
	}
	if err := c.spaces("SRV"); err != nil {
		return nil, err
	}
	port, err := c.u16("port")
	if err != nil {
		return nil, err
	}
	if err := c.spaces("SRV"); err != nil {
		return nil, err
	}
	target, err := c.domainName("domain")
	if err != nil {
		return nil, err
	}
	return domain.SRVData{Weight: weight, Port: port, Target: target}, nil
}

// sshfp reads "algorithm type fingerprint".
func (c *cursor) sshfp() (domain.RData, error) {
	alg, err := c.digit("algorithm")
	if err != nil {
		return nil, err
	}
	if err := c.spaces("SSHFP"); err != nil {
		return nil, err
	}
	fpType, err := c.digit("sshfp_type")
	if err != nil {
		return nil, err
	}
	if err := c.spaces("SSHFP"); err != nil {
		return nil, err
	}
	fp, err := c.hex("fingerprint")
	if err != nil {
		return nil, err
	}
	return domain.SSHFPData{Algorithm: alg, FingerprintType: fpType, Fingerprint: fp}, nil
}

// uri reads "weight target".
func (c *cursor) uri() (domain.RData, error) {
	weight, err := c.u16("weight")
	if err != nil {
		return nil, err
	}
	if err := c.spaces("URI"); err != nil {
		return nil, err
	}
	target, err := c.quoted("quoted_string")
	if err != nil {
		return nil, err
	}
	return domain.URIData{Weight: weight, Target: target}, nil
}
