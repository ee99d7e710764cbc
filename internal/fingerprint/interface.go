package fingerprint

import "context"

// Sink receives assembled reports. It is the persistence or forwarding
// collaborator; the assembler has no opinion on what it does.
type Sink interface {
	Save(ctx context.Context, session string, report *Report) error
	Close() error
}
