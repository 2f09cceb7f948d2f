package marksheet

import (
	"regexp"
	"strconv"
	"strings"
)

var number = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseMark extracts the first number in a cell. A comma is read as a decimal
// point, so "7,5" is 7.5 and "87/100" is 87. Cells without digits yield false.
func ParseMark(cell string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(cell), ",", ".")
	if s == "" {
		return 0, false
	}

	match := number.FindString(s)
	if match == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
