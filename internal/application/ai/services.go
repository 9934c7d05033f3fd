package ai

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/unireport/viewer/internal/domain/ai"
	"github.com/unireport/viewer/internal/domain/report"
)

// maxSummaryRows caps the payload handed to the model.
const maxSummaryRows = 40

type Service struct {
	client ai.Client
}

func NewService(client ai.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Enabled() bool {
	return s != nil && s.client != nil
}

// SummarizeTable renders the table rows as JSON lines and asks the
// model for a digest. Rows beyond the cap are dropped, not sampled.
func (s *Service) SummarizeTable(ctx context.Context, section string, t report.Table) (string, error) {
	if !s.Enabled() {
		return "", ai.ErrDisabled
	}

	var buf bytes.Buffer
	n := t.Len()
	if n > maxSummaryRows {
		n = maxSummaryRows
	}
	for i := 0; i < n; i++ {
		row, ok := t.Row(i)
		if !ok {
			continue
		}
		line, err := json.Marshal(row)
		if err != nil {
			continue
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	return s.client.Summarize(ctx, section, buf.String())
}
