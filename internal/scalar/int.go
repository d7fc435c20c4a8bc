package scalar

import "fmt"

// ParseInt parses a signed Int literal: decimal, 0x-prefixed hex, or
// 0b-prefixed binary, with an optional leading '-' and underscores
// permitted between (not leading/trailing) digits.
//
// Overflow/Underflow is detected digit by digit: incorporate each digit
// into the running int64 total and compare against the pre-update value,
// relying on two's-complement wraparound to reveal the crossing.
func ParseInt(input string) (value int64, status Status, bytesConsumed int) {
	s := newScanner(input)

	negated := s.expect('-')

	var result int64
	st := Success

	incorporateDec := func(r rune) {
		v := int64(decValue(r))
		old := result
		result *= 10
		if !negated {
			result += v
		} else {
			result -= v
		}
		if !negated && result < old {
			st = Overflow
		}
		if negated && result > old {
			st = Underflow
		}
	}
	incorporateHex := func(r rune) {
		hv, _ := hexValue(r)
		v := int64(hv)
		old := result
		result *= 16
		if !negated {
			result += v
		} else {
			result -= v
		}
		if !negated && result < old {
			st = Overflow
		}
		if negated && result > old {
			st = Underflow
		}
	}
	incorporateBin := func(r rune) {
		v := int64(binValue(r))
		old := result
		result *= 2
		if !negated {
			result += v
		} else {
			result -= v
		}
		if !negated && result < old {
			st = Overflow
		}
		if negated && result > old {
			st = Underflow
		}
	}

	reasonable := false
	decimal := true

	if s.expect('0') {
		switch {
		case s.expect('x'):
			decimal = false
			if r, ok := s.expectSet(hexDigits); ok {
				reasonable = true
				incorporateHex(r)
			}
			for {
				needDigit := s.expect('_')
				if r, ok := s.expectSet(hexDigits); ok {
					incorporateHex(r)
				} else if needDigit {
					return 0, Failure, 0
				} else {
					break
				}
			}
		case s.expect('b'):
			decimal = false
			if r, ok := s.expectSet(binaryDigits); ok {
				reasonable = true
				incorporateBin(r)
			}
			for {
				needDigit := s.expect('_')
				if r, ok := s.expectSet(binaryDigits); ok {
					incorporateBin(r)
				} else if needDigit {
					return 0, Failure, 0
				} else {
					break
				}
			}
		default:
			reasonable = true
		}
	}
	if decimal {
		if r, ok := s.expectSet(decimalDigits); ok {
			reasonable = true
			incorporateDec(r)
		}
		for {
			needDigit := s.expect('_')
			if r, ok := s.expectSet(decimalDigits); ok {
				incorporateDec(r)
			} else if needDigit {
				return 0, Failure, 0
			} else {
				break
			}
		}
	}
	if !reasonable {
		return 0, Failure, 0
	}
	return result, st, s.offset
}

// ParseUInt parses an unsigned UInt literal: decimal, 0x-prefixed hex, or
// 0b-prefixed binary, with underscores permitted between digits and an
// optional trailing 'u' suffix (required unless ignoreU is set).
func ParseUInt(input string, ignoreU bool) (value uint64, status Status, bytesConsumed int) {
	s := newScanner(input)

	var result uint64
	st := Success
	incorporateDec := func(r rune) {
		v := uint64(decValue(r))
		old := result
		result = result*10 + v
		if result < old {
			st = Overflow
		}
	}
	incorporateHex := func(r rune) {
		hv, _ := hexValue(r)
		v := uint64(hv)
		old := result
		result = result*16 + v
		if result < old {
			st = Overflow
		}
	}
	incorporateBin := func(r rune) {
		v := uint64(binValue(r))
		old := result
		result = result*2 + v
		if result < old {
			st = Overflow
		}
	}

	reasonable := false
	decimal := true

	if s.expect('0') {
		switch {
		case s.expect('x'):
			decimal = false
			if r, ok := s.expectSet(hexDigits); ok {
				reasonable = true
				incorporateHex(r)
			}
			for {
				needDigit := s.expect('_')
				if r, ok := s.expectSet(hexDigits); ok {
					incorporateHex(r)
				} else if needDigit {
					return 0, Failure, 0
				} else {
					break
				}
			}
		case s.expect('b'):
			decimal = false
			if r, ok := s.expectSet(binaryDigits); ok {
				reasonable = true
				incorporateBin(r)
			}
			for {
				needDigit := s.expect('_')
				if r, ok := s.expectSet(binaryDigits); ok {
					incorporateBin(r)
				} else if needDigit {
					return 0, Failure, 0
				} else {
					break
				}
			}
		default:
			reasonable = true
		}
	}
	if decimal {
		if r, ok := s.expectSet(decimalDigits); ok {
			reasonable = true
			incorporateDec(r)
		}
		for {
			needDigit := s.expect('_')
			if r, ok := s.expectSet(decimalDigits); ok {
				incorporateDec(r)
			} else if needDigit {
				return 0, Failure, 0
			} else {
				break
			}
		}
	}
	if !ignoreU && !s.expect('u') {
		return 0, Failure, 0
	}
	if !reasonable {
		return 0, Failure, 0
	}
	return result, st, s.offset
}

// FormatInt renders x in decimal, matching the grammar ParseInt accepts.
func FormatInt(x int64) string {
	return fmt.Sprintf("%d", x)
}

// FormatUInt renders x in decimal with a trailing 'u' suffix, matching the
// grammar ParseUInt accepts by default (ignoreU=false).
func FormatUInt(x uint64) string {
	return fmt.Sprintf("%du", x)
}
