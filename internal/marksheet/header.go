package marksheet

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Field is a canonical column of a marks sheet.
type Field string

const (
	StudentID   Field = "student_id"
	StudentName Field = "student_name"
	Subject     Field = "subject"
	Mark        Field = "mark"
)

// Required lists the fields a table must resolve to yield rows.
var Required = []Field{StudentID, Subject, Mark}

// Alias binds a canonical field to the header labels that name it, in match order.
type Alias struct {
	Field  Field
	Labels []string
}

// Aliases is the header vocabulary. Labels are compared after Normalize.
var Aliases = []Alias{
	{StudentID, []string{"student_id", "student id", "roll", "rollno", "roll no", "roll_no", "register", "reg no"}},
	{StudentName, []string{"student_name", "student name", "name"}},
	{Subject, []string{"subject", "course", "paper", "sub"}},
	{Mark, []string{"mark", "marks", "score", "total"}},
}

// Column locates a canonical field in a table header.
type Column struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

// HeaderMapping maps each resolved canonical field to its column.
type HeaderMapping map[Field]Column

// Score counts the required fields the mapping resolves.
func (m HeaderMapping) Score() int {
	n := 0
	for _, f := range Required {
		if _, ok := m[f]; ok {
			n++
		}
	}
	return n
}

// Complete reports whether every required field is resolved.
func (m HeaderMapping) Complete() bool {
	return m.Score() == len(Required)
}

var separators = regexp.MustCompile(`[\s\-_]+`)

// Normalize folds a header label for alias comparison: NFKC, trim, lowercase,
// and runs of whitespace, hyphens or underscores collapsed to one space.
func Normalize(label string) string {
	s := strings.ToLower(strings.TrimSpace(norm.NFKC.String(label)))
	return strings.TrimSpace(separators.ReplaceAllString(s, " "))
}

// MapHeader resolves canonical fields against header labels. For each field the
// first alias present in the header wins; when several columns normalize to
// that alias, the left-most column is used.
func MapHeader(header []string) HeaderMapping {
	index := make(map[string]int, len(header))
	for i, label := range header {
		n := Normalize(label)
		if _, seen := index[n]; !seen {
			index[n] = i
		}
	}

	mapping := make(HeaderMapping)
	for _, a := range Aliases {
		for _, label := range a.Labels {
			if i, ok := index[Normalize(label)]; ok {
				mapping[a.Field] = Column{Index: i, Label: header[i]}
				break
			}
		}
	}
	return mapping
}
