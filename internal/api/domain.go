package api

import (
	"github.com/JaimeStill/gradebook/internal/intent"
	"github.com/JaimeStill/gradebook/internal/marks"
	"github.com/JaimeStill/gradebook/internal/marksheet"
	"github.com/JaimeStill/gradebook/internal/questions"
	"github.com/JaimeStill/gradebook/internal/uploads"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Marks     marks.System
	Questions questions.System
	Uploads   uploads.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	marksSystem := marks.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	uploadsSystem := uploads.New(
		runtime.Database.Connection(),
		runtime.Storage,
		marksheet.New(nil, runtime.Logger),
		runtime.Logger,
		runtime.Pagination,
	)

	questionsSystem := questions.New(
		marksSystem,
		intent.New(),
		runtime.Logger,
	)

	return &Domain{
		Marks:     marksSystem,
		Questions: questionsSystem,
		Uploads:   uploadsSystem,
	}
}
