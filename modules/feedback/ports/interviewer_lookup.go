package ports

import "context"

// InterviewerExistence is the narrow surface of interviewers/service that
// feedback submission needs to validate the submitting interviewer id,
// kept as an interface so feedback never imports the interviewers module
// concretely.
type InterviewerExistence interface {
	Exists(ctx context.Context, id string) (bool, error)
}
