package section

// Byte classes used to tell section tokens apart.

func isOrderByte(b byte) bool {
	return b == '-' || (b >= '0' && b <= '9')
}

func isRelationalByte(b byte) bool {
	switch b {
	case '!', '<', '>', '=':
		return true
	}
	return false
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// IsOrder reports whether tok is made only of digits and minus signs.
func IsOrder(tok string) bool {
	if tok == "" {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if !isOrderByte(tok[i]) {
			return false
		}
	}
	return true
}

// IsCondition reports whether tok carries a relational operator.
func IsCondition(tok string) bool {
	for i := 0; i < len(tok); i++ {
		if isRelationalByte(tok[i]) {
			return true
		}
	}
	return false
}

func stripSpaces(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if !isSpaceByte(s[i]) {
			out = append(out, s[i])
		}
	}
	return string(out)
}
