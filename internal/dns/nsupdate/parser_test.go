package nsupdate

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-nsupdate/internal/dns/domain"
)

// parseOne parses a single-line script and returns its only directive.
func parseOne(t *testing.T, line string) domain.Directive {
	t.Helper()
	doc, err := Parse(line)
	require.NoError(t, err)
	require.Len(t, doc.Directives, 1)
	return doc.Directives[0]
}

func parseAdd(t *testing.T, line string) domain.UpdateAdd {
	t.Helper()
	add, ok := parseOne(t, line).(domain.UpdateAdd)
	require.True(t, ok, "expected UpdateAdd for %q", line)
	return add
}

// parseErr parses input that must fail and returns the *ParseError.
func parseErr(t *testing.T, input string) *ParseError {
	t.Helper()
	_, err := Parse(input)
	require.Error(t, err, "expected error for %q", input)
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "expected *ParseError, got %T", err)
	return pe
}

func TestParse_UpdateAddA(t *testing.T) {
	add := parseAdd(t, "update add example.com. 3600 IN A 192.0.2.1")

	assert.Equal(t, domain.NewName("example", "com"), add.Name)
	assert.Equal(t, "example.com.", add.Name.String())
	assert.Equal(t, uint32(3600), add.TTL)
	assert.Equal(t, domain.RRClassIN, add.Class)
	assert.Nil(t, add.Priority)
	assert.Equal(t, domain.AData{Address: domain.IPv4Address{192, 0, 2, 1}}, add.Record)
	assert.Equal(t, 1, add.Line)
}

func TestParse_UpdateAddSRV(t *testing.T) {
	add := parseAdd(t, "update add example.com. 3600 IN SRV 10 5060 sip.example.com.")

	assert.Nil(t, add.Priority)
	assert.Equal(t, domain.SRVData{
		Weight: 10,
		Port:   5060,
		Target: domain.NewName("sip", "example", "com"),
	}, add.Record)
}

func TestParse_UpdateAddSRVWithPriority(t *testing.T) {
	add := parseAdd(t, "update add _sip._tcp.example.com. 300 IN SRV 0 10 5060 sip.example.com.")

	require.NotNil(t, add.Priority)
	assert.Equal(t, uint16(0), *add.Priority)
	assert.Equal(t, domain.SRVData{
		Weight: 10,
		Port:   5060,
		Target: domain.NewName("sip", "example", "com"),
	}, add.Record)
	assert.Equal(t, []string{"_sip", "_tcp", "example", "com"}, add.Name.Labels)
}

func TestParse_UpdateDelete(t *testing.T) {
	d := parseOne(t, "update delete example.com. AAAA")

	assert.Equal(t, domain.UpdateDelete{
		Name: domain.NewName("example", "com"),
		Type: domain.RRTypeAAAA,
		Line: 1,
	}, d)
}

func TestParse_Send(t *testing.T) {
	assert.Equal(t, domain.Send{Line: 1}, parseOne(t, "send"))
}

func TestParse_RecordTypes(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		want     domain.RData
		priority *uint16
	}{
		{
			name: "AAAA",
			line: "update add host.example.com. 300 IN AAAA 2001:db8::1",
			want: domain.AAAAData{Address: domain.IPv6Address{Shape: domain.IPv6Compressed2, Literal: "2001:db8::1"}},
		},
		{
			name: "CNAME",
			line: "update add www.example.com. 300 IN CNAME example.com.",
			want: domain.CNAMEData{Target: domain.NewName("example", "com")},
		},
		{
			name: "TXT",
			line: `update add example.com. 300 IN TXT "v=spf1 -all"`,
			want: domain.TXTData{Text: domain.QuotedString{Raw: "v=spf1 -all"}},
		},
		{
			name: "MX without priority",
			line: "update add example.com. 300 IN MX mail.example.com.",
			want: domain.MXData{Host: domain.NewName("mail", "example", "com")},
		},
		{
			name:     "MX with priority",
			line:     "update add example.com. 300 IN MX 10 mail.example.com.",
			want:     domain.MXData{Host: domain.NewName("mail", "example", "com")},
			priority: u16(10),
		},
		{
			name: "MX with numeric first label",
			line: "update add example.com. 300 IN MX 10.example.com.",
			want: domain.MXData{Host: domain.NewName("10", "example", "com")},
		},
		{
			name: "NS",
			line: "update add example.com. 86400 IN NS ns1.example.net.",
			want: domain.NSData{Host: domain.NewName("ns1", "example", "net")},
		},
		{
			name: "SSHFP",
			line: "update add host.example.com. 300 IN SSHFP 1 2 0123456789ABCDEFabcdef",
			want: domain.SSHFPData{Algorithm: 1, FingerprintType: 2, Fingerprint: "0123456789ABCDEFabcdef"},
		},
		{
			name: "URI without priority",
			line: `update add _http._tcp.example.com. 300 IN URI 10 "https://www.example.com/"`,
			want: domain.URIData{Weight: 10, Target: domain.QuotedString{Raw: "https://www.example.com/"}},
		},
		{
			name:     "URI with priority",
			line:     `update add _ftp._tcp.example.com. 300 IN URI 1 10 "ftp://ftp.example.com/"`,
			want:     domain.URIData{Weight: 10, Target: domain.QuotedString{Raw: "ftp://ftp.example.com/"}},
			priority: u16(1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			add := parseAdd(t, tt.line)
			assert.Equal(t, tt.want, add.Record)
			assert.Equal(t, tt.want.Type(), add.Type())
			assert.Equal(t, tt.priority, add.Priority)
		})
	}
}

func TestParse_QuotedStringKeepsEscapes(t *testing.T) {
	add := parseAdd(t, `update add example.com. 60 IN TXT "say \"hi\" \\ then\nbye \/ \t"`)

	txt, ok := add.Record.(domain.TXTData)
	require.True(t, ok)
	assert.Equal(t, `say \"hi\" \\ then\nbye \/ \t`, txt.Text.Raw)

	decoded, err := txt.Text.Unescape()
	require.NoError(t, err)
	assert.Equal(t, "say \"hi\" \\ then\nbye / \t", decoded)
}

func TestParse_QuotedStringAllowsSemicolon(t *testing.T) {
	add := parseAdd(t, `update add example.com. 60 IN TXT "a;b" ; trailing comment`)
	assert.Equal(t, domain.TXTData{Text: domain.QuotedString{Raw: "a;b"}}, add.Record)
}

func TestParse_Document(t *testing.T) {
	input := `; provision example.com
update delete example.com. A

update add example.com. 3600 IN A 192.0.2.1   ; primary
	update add example.com. 3600 IN A 192.0.2.2
send
   ; second batch
update add www.example.com. 300 IN CNAME example.com.
send`

	doc, err := Parse(input)
	require.NoError(t, err)
	require.Equal(t, 6, doc.Len())

	assert.IsType(t, domain.UpdateDelete{}, doc.Directives[0])
	assert.IsType(t, domain.UpdateAdd{}, doc.Directives[1])
	assert.IsType(t, domain.UpdateAdd{}, doc.Directives[2])
	assert.Equal(t, domain.Send{Line: 6}, doc.Directives[3])
	assert.IsType(t, domain.UpdateAdd{}, doc.Directives[4])
	assert.Equal(t, domain.Send{Line: 9}, doc.Directives[5])

	lines := make([]int, 0, doc.Len())
	for _, d := range doc.Directives {
		lines = append(lines, d.SourceLine())
	}
	assert.Equal(t, []int{2, 4, 5, 6, 8, 9}, lines)
	assert.True(t, doc.HasSend())
}

func TestParse_BlankAndCommentOnly(t *testing.T) {
	inputs := []string{
		"",
		"\n",
		"; this is a comment",
		"   \t  \n\n; c\n   ; indented comment\n",
		"\r\n\r\n",
	}
	for _, in := range inputs {
		doc, err := Parse(in)
		require.NoError(t, err, "input %q", in)
		assert.Empty(t, doc.Directives, "input %q", in)
	}
}

func TestParse_CRLF(t *testing.T) {
	doc, err := Parse("update delete example.com. TXT\r\nsend\r\n")
	require.NoError(t, err)
	require.Len(t, doc.Directives, 2)
	assert.Equal(t, domain.Send{Line: 2}, doc.Directives[1])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kind   error
		line   int
		column int
		rule   string
	}{
		{"unknown record type", "update add example.com. 3600 IN PTR host.example.com.", ErrRecordType, 1, 33, "record_type"},
		{"unknown delete type", "update delete example.com. SOA", ErrRecordType, 1, 28, "record_type"},
		{"lowercase record type", "update add example.com. 3600 IN a 192.0.2.1", ErrRecordType, 1, 33, "record_type"},
		{"missing trailing dot", "update add example.com 3600 IN A 192.0.2.1", ErrDomain, 1, 23, "domain"},
		{"missing trailing dot at end", "update delete example.com", ErrDomain, 1, 26, "domain"},
		{"invalid label character", "update delete exa$mple.com. A", ErrDomain, 1, 18, "domain"},
		{"root only", "update delete . A", ErrDomain, 1, 15, "domain"},
		{"empty label", "update delete a..b. A", ErrDomain, 1, 17, "domain"},
		{"invalid byte after final dot", "update add example.com. 60 IN CNAME a.b.$", ErrDomain, 1, 41, "domain"},
		{"ipv4 out of range", "update add example.com. 60 IN A 256.0.0.1", ErrAddress, 1, 33, "ip_v4"},
		{"ipv4 leading zero", "update add example.com. 60 IN A 01.2.3.4", ErrAddress, 1, 33, "ip_v4"},
		{"ipv4 too short", "update add example.com. 60 IN A 1.2.3", ErrAddress, 1, 38, "ip_v4"},
		{"ipv4 too long", "update add example.com. 60 IN A 1.2.3.4.5", ErrAddress, 1, 40, "ip_v4"},
		{"ipv4 trailing letter", "update add example.com. 60 IN A 1.2.3.4x", ErrAddress, 1, 33, "ip_v4"},
		{"ipv6 double compression", "update add example.com. 60 IN AAAA 1::2::3", ErrAddress, 1, 36, "ip_v6"},
		{"ipv6 non-hex digit", "update add example.com. 60 IN AAAA 2001:db8::1g", ErrAddress, 1, 36, "ip_v6"},
		{"ipv6 zone with dash", "update add host.example.com. 60 IN AAAA fe80::1%en-0", ErrAddress, 1, 41, "ip_v6"},
		{"bad class", "update add example.com. 60 CH A 192.0.2.1", ErrLexical, 1, 28, "class"},
		{"ttl overflow", "update add example.com. 4294967296 IN A 192.0.2.1", ErrLexical, 1, 25, "ttl"},
		{"ttl not a number", "update add example.com. soon IN A 192.0.2.1", ErrLexical, 1, 25, "ttl"},
		{"port overflow", "update add example.com. 60 IN SRV 1 65536 sip.example.com.", ErrLexical, 1, 37, "port"},
		{"priority reading reaches further", "update add example.com. 60 IN MX 10 bad!host.example.com.", ErrDomain, 1, 40, "domain"},
		{"sshfp two digit algorithm", "update add example.com. 60 IN SSHFP 12 1 abcd", ErrLexical, 1, 37, "algorithm"},
		{"sshfp missing fingerprint", "update add example.com. 60 IN SSHFP 1 1 xyz", ErrLexical, 1, 41, "fingerprint"},
		{"unterminated string", `update add example.com. 60 IN TXT "abc`, ErrLexical, 1, 39, "quoted_string"},
		{"invalid escape", `update add example.com. 60 IN TXT "a\qb"`, ErrLexical, 1, 37, "quoted_string"},
		{"unknown directive", "prereq nxdomain example.com.", ErrStructural, 1, 1, "directive"},
		{"unknown update action", "update modify example.com.", ErrStructural, 1, 8, "update"},
		{"trailing garbage", "send now", ErrStructural, 1, 6, "line"},
		{"missing whitespace", "update add example.com. 60 IN A192.0.2.1", ErrRecordType, 1, 31, "record_type"},
		{"update alone", "update", ErrUnexpectedEOI, 1, 7, "update"},
		{"add ends after ttl", "update add example.com. 3600", ErrUnexpectedEOI, 1, 29, "add"},
		{"add ends after type", "update add example.com. 3600 IN A\nsend", ErrUnexpectedEOI, 1, 34, "A"},
		{"comment cuts directive", "update delete example.com. ; AAAA", ErrUnexpectedEOI, 1, 28, "record_type"},
		{"error on later line", "send\n\nupdate add example.com. 60 IN A 300.1.1.1\nsend", ErrAddress, 3, 33, "ip_v4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe := parseErr(t, tt.input)
			assert.ErrorIs(t, pe, tt.kind)
			assert.Equal(t, tt.line, pe.Line, "line")
			assert.Equal(t, tt.column, pe.Column, "column")
			assert.Equal(t, tt.rule, pe.Rule, "rule")
		})
	}
}

func TestParse_ErrorAbortsWholeDocument(t *testing.T) {
	doc, err := Parse("update add example.com. 60 IN A 192.0.2.1\nsend\nbogus\n")
	require.Error(t, err)
	assert.Empty(t, doc.Directives)
}

func TestParseError_Message(t *testing.T) {
	pe := parseErr(t, "update add example.com. 3600 IN PTR host.example.com.")

	assert.Equal(t, `"PTR"`, pe.Found)
	assert.Equal(t, 32, pe.Offset)
	assert.Contains(t, pe.Expected, "SSHFP")
	assert.Len(t, pe.Expected, 9)
	assert.Equal(t,
		`line 1, column 33: record type error in record_type: expected one of A, AAAA, CNAME, TXT, SRV, MX, NS, SSHFP, URI, found "PTR"`,
		pe.Error())
}

func TestParseError_StrayCarriageReturn(t *testing.T) {
	pe := parseErr(t, "send\rsend")

	assert.ErrorIs(t, pe, ErrStructural)
	assert.Equal(t, 5, pe.Column)
	assert.Equal(t, `"\r"`, pe.Found)
}

func TestParseError_AddressSuffixReported(t *testing.T) {
	pe := parseErr(t, "update add example.com. 60 IN A 1.2.3.4x")

	assert.Equal(t, `"1.2.3.4x"`, pe.Found)
	assert.Contains(t, pe.Reason, `"x"`)
}

func TestParseRecord(t *testing.T) {
	rd, prio, err := ParseRecord("MX 10 mail.example.com.")
	require.NoError(t, err)
	require.NotNil(t, prio)
	assert.Equal(t, uint16(10), *prio)
	assert.Equal(t, domain.MXData{Host: domain.NewName("mail", "example", "com")}, rd)

	rd, prio, err = ParseRecord("  A 203.0.113.7  ; note")
	require.NoError(t, err)
	assert.Nil(t, prio)
	assert.Equal(t, domain.AData{Address: domain.IPv4Address{203, 0, 113, 7}}, rd)

	_, _, err = ParseRecord("A 203.0.113.7\nA 203.0.113.8")
	assert.ErrorIs(t, err, ErrStructural)

	_, _, err = ParseRecord("HINFO cpu os")
	assert.ErrorIs(t, err, ErrRecordType)
}

func TestParse_ConcurrentCallsAreIndependent(t *testing.T) {
	inputs := []string{
		"update add a.example.com. 60 IN A 192.0.2.1\nsend",
		"update add b.example.com. 60 IN AAAA fe80::1%eth0\nsend",
		"update delete c.example.com. MX\nsend",
	}
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(in string) {
			defer wg.Done()
			doc, err := Parse(in)
			assert.NoError(t, err)
			assert.Len(t, doc.Directives, 2)
		}(inputs[i%len(inputs)])
	}
	wg.Wait()
}

func u16(v uint16) *uint16 {
	return &v
}
