package questions

import "context"

// System defines the public contract for answering student questions.
type System interface {
	Handler() *Handler

	// Ask classifies the question against the stored subjects and looks up
	// the requested marks. An unanswerable question still yields an Answer
	// whose Message explains what to ask instead.
	Ask(ctx context.Context, q Question) (*Answer, error)
}
