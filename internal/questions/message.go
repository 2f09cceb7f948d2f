package questions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JaimeStill/gradebook/internal/marks"
)

const (
	msgNoSubject  = "I couldn't detect the subject. Try: 'my mark in Data Structures'."
	msgNoSubjects = "No subjects found yet. Ask staff to upload the marks PDF first."
	msgUsage      = "Try asking: 'my mark in DS' or 'show my marks'."
)

// FormatMark renders a mark with up to six significant digits and no
// trailing zeros: 87 for 87.0, 90.5 for 90.5.
func FormatMark(mark float64) string {
	return strconv.FormatFloat(mark, 'g', 6, 64)
}

func who(studentID string, name *string) string {
	if name != nil && *name != "" {
		return fmt.Sprintf("%s (%s)", *name, studentID)
	}
	return studentID
}

func markReply(studentID string, name *string, subject string, mark float64) string {
	return fmt.Sprintf("Hi %s! Your mark in **%s** is **%s**.", who(studentID, name), subject, FormatMark(mark))
}

func missingMarkReply(studentID, subject string) string {
	return fmt.Sprintf("I couldn't find a mark for **%s** under student id **%s**.", subject, studentID)
}

func allMarksReply(studentID string, name *string, entries []marks.Entry) string {
	w := who(studentID, name)
	if len(entries) == 0 {
		return fmt.Sprintf("I couldn't find any marks saved for **%s** yet.", w)
	}

	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, fmt.Sprintf("Here are your saved marks, **%s**:", w))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("- **%s**: %s", e.Subject, FormatMark(e.Mark)))
	}
	return strings.Join(lines, "\n")
}

func noSubjectReply(subjects []string) string {
	if len(subjects) == 0 {
		return msgNoSubjects
	}

	listed := subjects[:min(len(subjects), MaxListedSubjects)]
	suffix := ""
	if len(subjects) > MaxListedSubjects {
		suffix = " ..."
	}
	return fmt.Sprintf("%s\nAvailable subjects: %s%s", msgNoSubject, strings.Join(listed, ", "), suffix)
}
