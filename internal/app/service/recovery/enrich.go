package recovery

import (
	"context"
	"sync"

	"github.com/lunarpay/reclaim/internal/platform/stripeapi"
	"github.com/lunarpay/reclaim/pkg/logctx"
)

const (
	defaultEmail    = "No email"
	defaultCountry  = "Unknown"
	errLoadingEmail = "Error loading"
)

// enrichGroups fans out across groups, fetching each customer's profile and
// payment methods. The semaphore bounds total in-flight processor calls so a
// large batch does not trip the processor's rate limits. Enrichment failures
// are isolated per customer: the group keeps placeholder values and the rest
// of the batch is unaffected.
func (s *Service) enrichGroups(ctx context.Context, cli stripeapi.Client, groups []*CustomerFailureGroup) {
	bound := s.cfg.Recovery.EnrichConcurrency
	if bound <= 0 {
		bound = 24
	}
	sem := make(chan struct{}, bound)

	var wg sync.WaitGroup
	for _, g := range groups {
		wg.Add(1)
		go func(g *CustomerFailureGroup) {
			defer wg.Done()
			s.enrichGroup(ctx, cli, sem, g)
		}(g)
	}
	wg.Wait()
}

func (s *Service) enrichGroup(ctx context.Context, cli stripeapi.Client, sem chan struct{}, g *CustomerFailureGroup) {
	var (
		profile *stripeapi.CustomerProfile
		methods []*stripeapi.PaymentMethod
		profErr error
		pmErr   error
	)

	// The two fetches are independent of each other.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		sem <- struct{}{}
		defer func() { <-sem }()
		profile, profErr = cli.GetCustomer(ctx, g.CustomerID)
	}()
	go func() {
		defer wg.Done()
		sem <- struct{}{}
		defer func() { <-sem }()
		methods, pmErr = cli.ListPaymentMethods(ctx, g.CustomerID)
	}()
	wg.Wait()

	if profErr != nil || pmErr != nil {
		logctx.FromCtx(ctx, s.log).Warnw("customer enrichment failed",
			"customer_id", g.CustomerID,
			"profile_err", profErr,
			"payment_methods_err", pmErr)
		g.Email = errLoadingEmail
		g.Country = defaultCountry
		g.PaymentMethodsCount = 0
		return
	}

	g.Email = profile.Email
	if g.Email == "" {
		g.Email = defaultEmail
	}
	g.Country = profile.Country
	if g.Country == "" {
		g.Country = defaultCountry
	}
	g.PaymentMethodsCount = len(methods)
}
