package recovery

import (
	"context"
	"fmt"

	"github.com/lunarpay/reclaim/internal/platform/stripeapi"
	types "github.com/lunarpay/reclaim/pkg/types"
)

// listAllPaymentIntents walks the processor's cursor pagination until
// exhaustion and returns the complete window. Pages are fetched strictly in
// sequence: each request needs the previous page's last-item cursor. Any
// page error aborts the whole accumulation — a partial transaction set would
// silently under-report failures, so nothing fetched so far is returned.
func (s *Service) listAllPaymentIntents(ctx context.Context, cli stripeapi.Client, w types.TimeWindow) ([]*stripeapi.PaymentIntent, error) {
	var all []*stripeapi.PaymentIntent
	cursor := ""
	for {
		page, err := cli.ListPaymentIntents(ctx, &stripeapi.ListRequest{
			CreatedFrom:   w.FromUnix(),
			CreatedTo:     w.ToUnix(),
			StartingAfter: cursor,
			Limit:         s.pageSize(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list payment intents: %w", err)
		}
		all = append(all, page.Items...)
		if !page.HasMore || page.NextCursor == "" {
			return all, nil
		}
		cursor = page.NextCursor
	}
}
