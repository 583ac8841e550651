package analytics

import "context"

// NopSink discards analytics events. Used when no sink is configured;
// click tracking in the database is unaffected.
type NopSink struct{}

// WriteClick drops the event
func (NopSink) WriteClick(ctx context.Context, point ClickPoint) error {
	return nil
}
