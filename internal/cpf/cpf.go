// Package cpf validates Brazilian individual taxpayer registry numbers using
// the official check-digit algorithm.
package cpf

// Valid reports whether input is a structurally valid CPF. Formatting
// characters are ignored; after stripping, the input must be exactly 11
// digits, must not be a single repeated digit, and both check digits must
// match their weighted sums.
func Valid(input string) bool {
	digits := stripNonDigits(input)
	if len(digits) != 11 {
		return false
	}

	allEqual := true
	for i := 1; i < 11; i++ {
		if digits[i] != digits[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	if checkDigit(digits, 9) != digits[9] {
		return false
	}
	return checkDigit(digits, 10) == digits[10]
}

// checkDigit computes the verification digit at position pos (9 or 10) from
// the preceding digits. Weights descend from pos+1 down to 2; the remainder
// (sum*10) mod 11 normalizes 10 and 11 to 0.
func checkDigit(digits []int, pos int) int {
	sum := 0
	for i := 0; i < pos; i++ {
		sum += digits[i] * (pos + 1 - i)
	}
	r := (sum * 10) % 11
	if r == 10 || r == 11 {
		r = 0
	}
	return r
}

func stripNonDigits(s string) []int {
	digits := make([]int, 0, len(s))
	for _, c := range s {
		if c >= '0' && c <= '9' {
			digits = append(digits, int(c-'0'))
		}
	}
	return digits
}
