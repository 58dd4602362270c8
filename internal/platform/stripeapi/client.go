package stripeapi

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Client wraps the payment-processor calls this service depends on. One
// client is bound to exactly one stored credential; callers must construct a
// fresh client per user via Factory so a request never runs under another
// account's secret.
type Client interface {
	// ListPaymentIntents fetches a single page. Pagination is driven by the
	// caller through ListRequest.StartingAfter.
	ListPaymentIntents(ctx context.Context, req *ListRequest) (*ListPage, error)
	GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error)
	GetCustomer(ctx context.Context, id string) (*CustomerProfile, error)
	// ListPaymentMethods returns the customer's card payment methods in
	// processor order. Callers must not reorder: position decides which
	// method a retry tries first.
	ListPaymentMethods(ctx context.Context, customerID string) ([]*PaymentMethod, error)
	CreateAndConfirmCharge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error)
}

// Factory builds a Client for one credential.
type Factory func(secretKey string) Client

type apiClient struct {
	sc *client.API
}

func NewClient(secretKey string) Client {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &apiClient{sc: sc}
}

func toPaymentIntent(pi *stripe.PaymentIntent) *PaymentIntent {
	out := &PaymentIntent{
		ID:       pi.ID,
		Status:   ParseIntentStatus(string(pi.Status)),
		Amount:   pi.Amount,
		Currency: string(pi.Currency),
		Created:  pi.Created,
	}
	if pi.Customer != nil {
		out.CustomerID = pi.Customer.ID
	}
	if pi.LastPaymentError != nil {
		out.FailureMessage = pi.LastPaymentError.Msg
	}
	return out
}

func (c *apiClient) ListPaymentIntents(ctx context.Context, req *ListRequest) (*ListPage, error) {
	params := &stripe.PaymentIntentListParams{}
	params.Context = ctx
	params.Single = true
	params.Limit = stripe.Int64(req.Limit)
	if req.StartingAfter != "" {
		params.StartingAfter = stripe.String(req.StartingAfter)
	}
	if req.CreatedFrom > 0 || req.CreatedTo > 0 {
		params.CreatedRange = &stripe.RangeQueryParams{
			GreaterThanOrEqual: req.CreatedFrom,
			LesserThanOrEqual:  req.CreatedTo,
		}
	}

	iter := c.sc.PaymentIntents.List(params)
	page := &ListPage{}
	for iter.Next() {
		pi := toPaymentIntent(iter.PaymentIntent())
		page.Items = append(page.Items, pi)
		page.NextCursor = pi.ID
	}
	if err := iter.Err(); err != nil {
		return nil, mapErr(err)
	}
	if l := iter.PaymentIntentList(); l != nil {
		page.HasMore = l.HasMore
	}
	return page, nil
}

func (c *apiClient) GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := c.sc.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, mapErr(err)
	}
	return toPaymentIntent(pi), nil
}

func (c *apiClient) GetCustomer(ctx context.Context, id string) (*CustomerProfile, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx
	cust, err := c.sc.Customers.Get(id, params)
	if err != nil {
		return nil, mapErr(err)
	}
	profile := &CustomerProfile{ID: cust.ID, Email: cust.Email}
	if cust.Address != nil {
		profile.Country = cust.Address.Country
	}
	return profile, nil
}

func (c *apiClient) ListPaymentMethods(ctx context.Context, customerID string) ([]*PaymentMethod, error) {
	params := &stripe.PaymentMethodListParams{
		Customer: stripe.String(customerID),
		Type:     stripe.String(string(stripe.PaymentMethodTypeCard)),
	}
	params.Context = ctx

	var methods []*PaymentMethod
	iter := c.sc.PaymentMethods.List(params)
	for iter.Next() {
		pm := iter.PaymentMethod()
		m := &PaymentMethod{ID: pm.ID}
		if pm.Card != nil {
			m.Brand = string(pm.Card.Brand)
			m.Last4 = pm.Card.Last4
		}
		methods = append(methods, m)
	}
	if err := iter.Err(); err != nil {
		return nil, mapErr(err)
	}
	return methods, nil
}

func (c *apiClient) CreateAndConfirmCharge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.Amount),
		Currency:      stripe.String(req.Currency),
		Customer:      stripe.String(req.CustomerID),
		PaymentMethod: stripe.String(req.PaymentMethodID),
		Confirm:       stripe.Bool(true),
		OffSession:    stripe.Bool(true),
	}
	params.Context = ctx
	if req.OriginalIntentID != "" {
		params.AddMetadata("recovered_from", req.OriginalIntentID)
	}

	pi, err := c.sc.PaymentIntents.New(params)
	if err != nil {
		return nil, mapErr(err)
	}

	res := &ChargeResult{
		ID:        pi.ID,
		Status:    string(pi.Status),
		Succeeded: pi.Status == stripe.PaymentIntentStatusSucceeded,
	}
	if !res.Succeeded && pi.LastPaymentError != nil {
		res.FailureMessage = pi.LastPaymentError.Msg
	}
	return res, nil
}
