package marks

import (
	"github.com/JaimeStill/gradebook/pkg/repository"
)

const (
	insertSQL = `
		INSERT INTO marks(student_id, student_name, subject, mark, source_file, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	subjectsSQL = `
		SELECT subject FROM marks
		GROUP BY subject
		ORDER BY LOWER(subject), subject`

	latestSQL = `
		SELECT mark FROM marks
		WHERE student_id = $1 AND subject = $2
		ORDER BY id DESC
		LIMIT 1`

	allSQL = `
		SELECT subject, mark FROM marks
		WHERE student_id = $1
		ORDER BY LOWER(subject), id`

	nameSQL = `
		SELECT student_name FROM marks
		WHERE student_id = $1 AND student_name IS NOT NULL AND student_name <> ''
		ORDER BY id DESC
		LIMIT 1`
)

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	err := s.Scan(&e.Subject, &e.Mark)
	return e, err
}

func scanString(s repository.Scanner) (string, error) {
	var v string
	err := s.Scan(&v)
	return v, err
}

func scanFloat(s repository.Scanner) (float64, error) {
	var v float64
	err := s.Scan(&v)
	return v, err
}
