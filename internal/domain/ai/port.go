package ai

import "context"

type Client interface {
	Summarize(ctx context.Context, section string, rows string) (string, error)
}
