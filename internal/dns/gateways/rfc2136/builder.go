// Package rfc2136 renders update batches as RFC 2136 UPDATE messages.
// Messages are built and packed only; nothing here talks to the network.
package rfc2136

import (
	"fmt"
	"net"
	"strings"

	"github.com/miekg/dns"

	"github.com/haukened/rr-nsupdate/internal/dns/common/utils"
	"github.com/haukened/rr-nsupdate/internal/dns/domain"
	"github.com/haukened/rr-nsupdate/internal/dns/services/updater"
)

// ZoneLocator maps an owner name to the zone it is updated through.
type ZoneLocator func(name string) string

// Builder implements updater.MessageBuilder.
type Builder struct {
	zoneFor ZoneLocator
}

// NewBuilder returns a Builder that groups updates by the zone zoneFor reports.
// A nil locator falls back to each name's registrable domain.
func NewBuilder(zoneFor ZoneLocator) *Builder {
	if zoneFor == nil {
		zoneFor = utils.GetApexDomain
	}
	return &Builder{zoneFor: zoneFor}
}

// Build returns one UPDATE message per zone touched by batch, in order of first use.
// Within a message the prerequisite section is empty and updates keep their script order.
func (b *Builder) Build(batch domain.Batch) ([]domain.UpdateMessage, error) {
	var order []string
	msgs := make(map[string]*dns.Msg)
	counts := make(map[string]*domain.UpdateMessage)

	msgFor := func(name domain.Name) (*dns.Msg, *domain.UpdateMessage) {
		zone := utils.CanonicalDNSName(b.zoneFor(name.String()))
		m, ok := msgs[zone]
		if !ok {
			m = new(dns.Msg)
			m.SetUpdate(dns.Fqdn(zone))
			msgs[zone] = m
			counts[zone] = &domain.UpdateMessage{Zone: zone}
			order = append(order, zone)
		}
		return m, counts[zone]
	}

	for _, d := range batch.Updates {
		switch u := d.(type) {
		case domain.UpdateAdd:
			rr, err := NewRR(u)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", u.Line, err)
			}
			m, um := msgFor(u.Name)
			m.Insert([]dns.RR{rr})
			um.Adds++
		case domain.UpdateDelete:
			m, um := msgFor(u.Name)
			m.RemoveRRset([]dns.RR{&dns.ANY{Hdr: dns.RR_Header{
				Name:   u.Name.String(),
				Rrtype: uint16(u.Type),
				Class:  dns.ClassINET,
			}}})
			um.Deletes++
		}
	}

	out := make([]domain.UpdateMessage, 0, len(order))
	for _, zone := range order {
		m := msgs[zone]
		wire, err := m.Pack()
		if err != nil {
			return nil, fmt.Errorf("pack update for %s: %w", zone, err)
		}
		um := *counts[zone]
		um.Wire = wire
		um.Text = m.String()
		out = append(out, um)
	}
	return out, nil
}

// octetEscaper protects backslashes, which the packer treats as escapes in text fields.
var octetEscaper = strings.NewReplacer(`\`, `\\`)

// NewRR converts an add directive into the equivalent resource record.
func NewRR(u domain.UpdateAdd) (dns.RR, error) {
	hdr := dns.RR_Header{
		Name:   u.Name.String(),
		Rrtype: uint16(u.Type()),
		Class:  dns.ClassINET,
		Ttl:    u.TTL,
	}
	prio := u.PriorityOrZero()

	switch rd := u.Record.(type) {
	case domain.AData:
		return &dns.A{Hdr: hdr, A: net.IP(rd.Address[:])}, nil
	case domain.AAAAData:
		addr, err := rd.Address.Addr()
		if err != nil {
			return nil, err
		}
		a16 := addr.As16()
		return &dns.AAAA{Hdr: hdr, AAAA: net.IP(a16[:])}, nil
	case domain.CNAMEData:
		return &dns.CNAME{Hdr: hdr, Target: rd.Target.String()}, nil
	case domain.NSData:
		return &dns.NS{Hdr: hdr, Ns: rd.Host.String()}, nil
	case domain.MXData:
		return &dns.MX{Hdr: hdr, Preference: prio, Mx: rd.Host.String()}, nil
	case domain.SRVData:
		return &dns.SRV{Hdr: hdr, Priority: prio, Weight: rd.Weight, Port: rd.Port, Target: rd.Target.String()}, nil
	case domain.TXTData:
		text, err := rd.Text.Unescape()
		if err != nil {
			return nil, err
		}
		return &dns.TXT{Hdr: hdr, Txt: splitText(text)}, nil
	case domain.SSHFPData:
		return &dns.SSHFP{Hdr: hdr, Algorithm: rd.Algorithm, Type: rd.FingerprintType, FingerPrint: rd.Fingerprint}, nil
	case domain.URIData:
		target, err := rd.Target.Unescape()
		if err != nil {
			return nil, err
		}
		return &dns.URI{Hdr: hdr, Priority: prio, Weight: rd.Weight, Target: octetEscaper.Replace(target)}, nil
	case nil:
		return nil, fmt.Errorf("add for %s has no record", hdr.Name)
	default:
		return nil, fmt.Errorf("unsupported record payload %T", rd)
	}
}

// splitText cuts text into escaped character-strings of at most 255 raw bytes each.
func splitText(text string) []string {
	if text == "" {
		return []string{""}
	}
	var parts []string
	for len(text) > 0 {
		n := min(len(text), 255)
		parts = append(parts, octetEscaper.Replace(text[:n]))
		text = text[n:]
	}
	return parts
}

var _ updater.MessageBuilder = (*Builder)(nil)
