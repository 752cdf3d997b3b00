package timeclock

import "context"

type ClockSessionService interface {
	// RecordEvent ingests one raw badge event, opening a session or closing
	// the matching open one.
	RecordEvent(ctx context.Context, req ClockEventRequest) (SessionResponse, error)

	Get(ctx context.Context, id string) (SessionResponse, error)
	List(ctx context.Context, filter SessionFilter) ([]SessionResponse, int64, error)

	// Correct applies a manual timestamp/comment fix and stamps the edit trail.
	Correct(ctx context.Context, id string, req CorrectSessionRequest) (SessionResponse, error)
}
