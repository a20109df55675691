package encoding

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// unescapeComponent reverses writeEscaped: percent-decodes, and collapses
// the "..." + extra-dots encoding of an all-dots value back to plain dots.
func unescapeComponent(s string) ([]byte, error) {
	if strings.HasPrefix(s, "...") {
		out := make([]byte, len(s))
		for i := range out {
			out[i] = '.'
		}
		return out, nil
	}

	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' {
			if i+2 >= len(s) {
				return nil, ErrFormat{"invalid percent-escape in component: " + s}
			}
			b, err := hex.DecodeString(s[i+1 : i+3])
			if err != nil || len(b) != 1 {
				return nil, ErrFormat{"invalid percent-escape in component: " + s}
			}
			out = append(out, b[0])
			i += 2
		} else {
			out = append(out, s[i])
		}
	}
	return out, nil
}

// ComponentFromStr parses a single URI-form component, honoring an
// optional "<convention>=" or "<type-number>=" prefix.
func ComponentFromStr(s string) (Component, error) {
	if rest, ok := strings.CutPrefix(s, DigestShaNameConvention+"="); ok {
		digest, err := hex.DecodeString(rest)
		if err != nil {
			return Component{}, ErrFormat{"invalid sha256digest component: " + s}
		}
		return ImplicitSha256DigestComponent(digest)
	}

	typ := TypeGenericNameComponent
	valStr := s
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		typStr := s[:idx]
		if !isAllDigits(typStr) {
			// Not a numeric type prefix (e.g. a percent-escaped value that
			// happens to contain '='); treat the whole string as a value.
		} else {
			n, err := strconv.ParseUint(typStr, 10, 64)
			if err != nil {
				return Component{}, ErrFormat{"invalid component type: " + s}
			}
			typ = TLNum(n)
			valStr = s[idx+1:]
		}
	}

	val, err := unescapeComponent(valStr)
	if err != nil {
		return Component{}, err
	}
	return Component{Typ: typ, Val: val}, nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
