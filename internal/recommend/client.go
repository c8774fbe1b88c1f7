// internal/recommend/client.go
package recommend

import "context"

// CallOptions are the per-call sampling parameters. Retry attempts raise the
// temperature above zero to keep a deterministic-leaning model from
// reproducing the same thin answer.
type CallOptions struct {
	Temperature float64
	WebSearch   bool
}

// Client is the external recommendation source. Implementations must treat
// the source as unreliable: responses may omit JSON entirely, undershoot the
// requested count, or time out.
type Client interface {
	Generate(ctx context.Context, prompt string, opts CallOptions) (string, error)
}
