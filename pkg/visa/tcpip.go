package visa

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// TCPIPAddress is a parsed TCPIP resource string:
//
//	TCPIP[board]::[userinfo@]host[::LAN device name][::INSTR]
//	TCPIP[board]::[userinfo@]host::port::SOCKET
//
// The host may be a hostname, an IPv4 address, or a bracketed IPv6 address;
// it is stored verbatim, brackets included. The userinfo text before an @
// is opaque credential material and may be empty while still present.
type TCPIPAddress struct {
	board       uint16
	hasBoard    bool
	userInfo    string
	hasUserInfo bool
	host        string
	device      string
	port        uint16
	socket      bool
	instr       bool
}

// Kind reports KindTCPIP.
func (a *TCPIPAddress) Kind() Kind { return KindTCPIP }

// Board reports the interface board number, if present.
func (a *TCPIPAddress) Board() (uint16, bool) { return a.board, a.hasBoard }

// UserInfo reports the credential text before the @ separator. ok is true
// even when the text is empty, as in "TCPIP::@[fe80::1]::hislip0::INSTR".
func (a *TCPIPAddress) UserInfo() (string, bool) { return a.userInfo, a.hasUserInfo }

// Host reports the host exactly as written, brackets included for IPv6.
func (a *TCPIPAddress) Host() string { return a.host }

// Device reports the LAN device name ("inst0", "hislip0", ...). Empty means
// the default device; meaningless for SOCKET resources.
func (a *TCPIPAddress) Device() string { return a.device }

// Port reports the TCP port for SOCKET resources.
func (a *TCPIPAddress) Port() (uint16, bool) { return a.port, a.socket }

// Socket reports whether this is a raw SOCKET resource.
func (a *TCPIPAddress) Socket() bool { return a.socket }

// Instr reports whether the INSTR suffix was present.
func (a *TCPIPAddress) Instr() bool { return a.instr }

func (a *TCPIPAddress) sealedAddress() {}

// String renders the canonical form; SOCKET and INSTR render uppercase.
func (a *TCPIPAddress) String() string {
	var sb strings.Builder
	sb.WriteString("TCPIP")
	if a.hasBoard {
		fmt.Fprintf(&sb, "%d", a.board)
	}
	sb.WriteString("::")
	if a.hasUserInfo {
		sb.WriteString(a.userInfo)
		sb.WriteByte('@')
	}
	sb.WriteString(a.host)
	if a.socket {
		fmt.Fprintf(&sb, "::%d::SOCKET", a.port)
		return sb.String()
	}
	if a.device != "" {
		fmt.Fprintf(&sb, "::%s", a.device)
	}
	if a.instr {
		sb.WriteString("::INSTR")
	}
	return sb.String()
}

// The TCPIP grammar is token-shaped rather than character-shaped
// (credentials, bracketed IPv6 hosts, a variable tail), so it is declared
// as a participle grammar instead of a hand-rolled scanner. Rule order
// matters: "::" must win over ":" and userinfo is recognized by its
// trailing @ before host atoms are considered.
var tcpipLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Sep", Pattern: `::`},
	{Name: "UserInfo", Pattern: `[^:@\[\]]*(:[^:@\[\]]*)?@`},
	{Name: "IPv6", Pattern: `\[[0-9A-Za-z:.%]+\]`},
	{Name: "Atom", Pattern: `[^:@\[\]]+`},
	{Name: "Colon", Pattern: `:`},
})

type tcpipPrefix struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Text   string `@Atom`
}

type tcpipUser struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Text   string `@UserInfo`
}

type tcpipHost struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Text   string `@IPv6 | @Atom`
}

type tcpipSeg struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Text   string `Sep @Atom`
}

type tcpipAST struct {
	Prefix tcpipPrefix `@@ Sep`
	User   *tcpipUser  `@@?`
	Host   tcpipHost   `@@`
	Segs   []tcpipSeg  `@@*`
}

var tcpipGrammar = participle.MustBuild[tcpipAST](
	participle.Lexer(tcpipLexer),
)

const tcpipMissing = "host or terminating section (INSTR or SOCKET)"

// ParseTCPIP parses a TCPIP resource string.
func ParseTCPIP(input string) (*TCPIPAddress, error) {
	ast, err := tcpipGrammar.ParseString("", input)
	if err != nil {
		return nil, tcpipMapError(input, err)
	}

	addr := &TCPIPAddress{host: ast.Host.Text}

	// The prefix atom carries the tag and the optional board digits; the
	// lexer cannot split them, so the tag is validated here. As in the
	// other families the tag is case-sensitive inside the parser.
	const tag = "TCPIP"
	if !strings.HasPrefix(ast.Prefix.Text, tag) {
		n := len(tag)
		if len(input) < n {
			n = len(input)
		}
		return nil, &NotPrefixError{
			Kind:  KindTCPIP,
			Found: input[:n],
			Input: input,
			Span:  Span{Start: 0, End: n},
		}
	}
	if digits := ast.Prefix.Text[len(tag):]; digits != "" {
		v, err := parseUintField(input, digits,
			Span{Start: len(tag), End: len(tag) + len(digits)}, 10, 16)
		if err != nil {
			return nil, err
		}
		addr.board = uint16(v)
		addr.hasBoard = true
	}

	if ast.User != nil {
		addr.userInfo = strings.TrimSuffix(ast.User.Text, "@")
		addr.hasUserInfo = true
	}

	segs := ast.Segs
	if len(segs) == 0 {
		// Bare host: the default device with the INSTR terminator omitted.
		return addr, nil
	}
	last := segs[len(segs)-1]
	switch {
	case strings.EqualFold(last.Text, "INSTR"):
		addr.instr = true
		devs := segs[:len(segs)-1]
		if len(devs) > 1 {
			return nil, &InvalidSuffixError{
				Want:  `a single LAN device name before "INSTR"`,
				Found: devs[1].Text,
				Input: input,
				Span:  tcpipSegSpan(devs[1]),
			}
		}
		if len(devs) == 1 {
			addr.device = devs[0].Text
		}
	case strings.EqualFold(last.Text, "SOCKET"):
		addr.socket = true
		ports := segs[:len(segs)-1]
		if len(ports) == 0 {
			return nil, &IncompleteAddressError{
				Input:   input,
				Missing: `port number before "SOCKET"`,
				Span:    Span{Start: last.Pos.Offset, End: last.Pos.Offset},
			}
		}
		if len(ports) > 1 {
			return nil, &InvalidSuffixError{
				Want:  `a single port number before "SOCKET"`,
				Found: ports[1].Text,
				Input: input,
				Span:  tcpipSegSpan(ports[1]),
			}
		}
		v, err := parseUintField(input, ports[0].Text, tcpipSegSpan(ports[0]), 10, 16)
		if err != nil {
			return nil, err
		}
		addr.port = uint16(v)
	default:
		if len(segs) > 1 {
			return nil, &InvalidSuffixError{
				Want:  `"INSTR" or "SOCKET"`,
				Found: last.Text,
				Input: input,
				Span:  tcpipSegSpan(last),
			}
		}
		// A lone trailing section is a device name with INSTR omitted.
		addr.device = last.Text
	}
	return addr, nil
}

// tcpipSegSpan is the byte span of a tail segment's text, excluding the
// leading separator the segment consumed.
func tcpipSegSpan(seg tcpipSeg) Span {
	end := seg.EndPos.Offset
	return Span{Start: end - len(seg.Text), End: end}
}

// tcpipMapError converts a participle parse failure into the shared error
// taxonomy: end of input becomes IncompleteAddressError, a stray colon
// becomes InvalidSeparatorError with the same two-byte window the other
// families report, and anything else becomes SyntaxError covering the text
// up to the next separator.
func tcpipMapError(input string, err error) error {
	var perr participle.Error
	if !errors.As(err, &perr) {
		return err
	}
	off := perr.Position().Offset
	if off >= len(input) {
		return &IncompleteAddressError{
			Input:   input,
			Missing: tcpipMissing,
			Span:    Span{Start: len(input), End: len(input)},
		}
	}
	if input[off] == ':' {
		end := off + 2
		if end > len(input) {
			end = len(input)
		}
		sp := Span{Start: off, End: end}
		return &InvalidSeparatorError{Found: sp.Slice(input), Input: input, Span: sp}
	}
	end := off
	for end < len(input) && input[end] != ':' {
		end++
	}
	sp := Span{Start: off, End: end}
	return &SyntaxError{Found: sp.Slice(input), Input: input, Span: sp}
}
