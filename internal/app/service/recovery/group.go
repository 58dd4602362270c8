package recovery

import (
	"sort"

	"github.com/samber/lo"

	"github.com/lunarpay/reclaim/internal/platform/stripeapi"
	types "github.com/lunarpay/reclaim/pkg/types"
)

var failedStatuses = []stripeapi.IntentStatus{
	stripeapi.IntentStatusRequiresPaymentMethod,
	stripeapi.IntentStatusFailed,
	stripeapi.IntentStatusCanceled,
}

func isFailed(pi *stripeapi.PaymentIntent) bool {
	return lo.Contains(failedStatuses, pi.Status)
}

type groupKey struct {
	customerID string
	currency   string
}

// groupFailures filters the accumulated intents down to the failed subset
// and partitions it by customer. Intents with no customer are dropped: there
// is nothing to retry against. A customer with failures in more than one
// currency yields one group per currency, so amounts are never summed across
// currencies. Groups come back ordered by latest failure, newest first.
func groupFailures(intents []*stripeapi.PaymentIntent) []*CustomerFailureGroup {
	failed := lo.Filter(intents, func(pi *stripeapi.PaymentIntent, _ int) bool {
		return isFailed(pi) && pi.CustomerID != ""
	})

	byKey := make(map[groupKey]*CustomerFailureGroup)
	var order []groupKey
	for _, pi := range failed {
		key := groupKey{customerID: pi.CustomerID, currency: types.NormalizeCurrency(pi.Currency)}
		g, ok := byKey[key]
		if !ok {
			g = &CustomerFailureGroup{CustomerID: key.customerID, Currency: key.currency}
			byKey[key] = g
			order = append(order, key)
		}
		g.Transactions = append(g.Transactions, &FailedTransaction{
			ID:      pi.ID,
			Amount:  pi.Amount,
			Created: pi.Created,
			Status:  string(pi.Status),
		})
		g.TotalAmount += pi.Amount
		g.FailedCount++
		if pi.Created > g.LatestFailureAt {
			g.LatestFailureAt = pi.Created
		}
	}

	groups := make([]*CustomerFailureGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, byKey[key])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].LatestFailureAt > groups[j].LatestFailureAt
	})
	return groups
}
