// Package phone normalizes contact numbers into the digit strings used
// for matching recording filenames. CRM contact fields are free text and
// may carry several numbers plus annotations, e.g.
// "624784798 ( 960432023 ALT )".
package phone

import (
	"regexp"
	"strings"
)

const minLength = 9

var (
	digitRun  = regexp.MustCompile(`\d{9,}`)
	nonDigits = regexp.MustCompile(`[^0-9]`)
	ccPrefix  = regexp.MustCompile(`^(0034|34)`)
)

// ExtractAll returns every phone number found in a free-text contact
// field, in order of appearance. Each run of nine or more digits is
// cleaned: the Spanish country-code prefix ("34" or "0034") is stripped,
// then leading zeros while the number stays at least nine digits long.
// When no run is found, the whole string is stripped of non-digits and
// kept if it is long enough.
func ExtractAll(raw string) []string {
	numbers := []string{}

	if strings.TrimSpace(raw) == "" {
		return numbers
	}

	for _, run := range digitRun.FindAllString(raw, -1) {
		n := ccPrefix.ReplaceAllString(run, "")
		for len(n) > minLength && strings.HasPrefix(n, "0") {
			n = n[1:]
		}
		if len(n) >= minLength {
			numbers = append(numbers, n)
		}
	}

	if len(numbers) == 0 {
		clean := nonDigits.ReplaceAllString(raw, "")
		if len(clean) >= minLength {
			numbers = append(numbers, clean)
		}
	}

	return numbers
}

// Candidates returns the filename-matching variants of one cleaned
// number: the number itself and, for long numbers, the number without
// its first digit. Some servers record numbers with a leading trunk
// digit, some without.
func Candidates(number string) []string {
	if len(number) > 8 {
		return []string{number, number[1:]}
	}
	return []string{number}
}
