package recovery

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/lunarpay/reclaim/internal/app/service/ledger"
	"github.com/lunarpay/reclaim/internal/platform/stripeapi"
	"github.com/lunarpay/reclaim/pkg/config"
)

// fakeClient scripts the processor adapter for tests. List pages are served
// in order; per-customer lookups come from the maps.
type fakeClient struct {
	mu sync.Mutex

	pages     []*stripeapi.ListPage
	pageErrAt int // page index that errors, -1 for never
	listCalls []*stripeapi.ListRequest

	intents     map[string]*stripeapi.PaymentIntent
	customers   map[string]*stripeapi.CustomerProfile
	customerErr map[string]error
	methods     map[string][]*stripeapi.PaymentMethod
	methodsErr  map[string]error

	chargeFn    func(req *stripeapi.ChargeRequest) (*stripeapi.ChargeResult, error)
	chargeCalls []*stripeapi.ChargeRequest
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		pageErrAt:   -1,
		intents:     map[string]*stripeapi.PaymentIntent{},
		customers:   map[string]*stripeapi.CustomerProfile{},
		customerErr: map[string]error{},
		methods:     map[string][]*stripeapi.PaymentMethod{},
		methodsErr:  map[string]error{},
	}
}

func (f *fakeClient) ListPaymentIntents(_ context.Context, req *stripeapi.ListRequest) (*stripeapi.ListPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := len(f.listCalls)
	f.listCalls = append(f.listCalls, req)
	if idx == f.pageErrAt {
		return nil, stripeapi.ErrUnavailable
	}
	if idx >= len(f.pages) {
		return &stripeapi.ListPage{}, nil
	}
	return f.pages[idx], nil
}

func (f *fakeClient) GetPaymentIntent(_ context.Context, id string) (*stripeapi.PaymentIntent, error) {
	pi, ok := f.intents[id]
	if !ok {
		return nil, stripeapi.ErrNotFound
	}
	return pi, nil
}

func (f *fakeClient) GetCustomer(_ context.Context, id string) (*stripeapi.CustomerProfile, error) {
	if err := f.customerErr[id]; err != nil {
		return nil, err
	}
	if p, ok := f.customers[id]; ok {
		return p, nil
	}
	return nil, stripeapi.ErrNotFound
}

func (f *fakeClient) ListPaymentMethods(_ context.Context, customerID string) ([]*stripeapi.PaymentMethod, error) {
	if err := f.methodsErr[customerID]; err != nil {
		return nil, err
	}
	return f.methods[customerID], nil
}

func (f *fakeClient) CreateAndConfirmCharge(_ context.Context, req *stripeapi.ChargeRequest) (*stripeapi.ChargeResult, error) {
	f.mu.Lock()
	f.chargeCalls = append(f.chargeCalls, req)
	f.mu.Unlock()
	if f.chargeFn == nil {
		return &stripeapi.ChargeResult{ID: "pi_new", Status: "succeeded", Succeeded: true}, nil
	}
	return f.chargeFn(req)
}

type fakeCredentials struct {
	secret string
	err    error
}

func (f *fakeCredentials) GetCredentialForUser(context.Context, string) (string, error) {
	return f.secret, f.err
}

type fakeLedger struct {
	entries []*ledger.Entry
	err     error
}

func (f *fakeLedger) Record(_ context.Context, e *ledger.Entry) error {
	f.entries = append(f.entries, e)
	return f.err
}

func newTestService(cli *fakeClient, led *fakeLedger) *Service {
	cfg := &config.Config{}
	cfg.Recovery.PageSize = 2
	cfg.Recovery.EnrichConcurrency = 4
	cfg.Recovery.DefaultWindowDays = 7
	return &Service{
		cfg:         cfg,
		log:         zap.NewNop().Sugar(),
		credentials: &fakeCredentials{secret: "sk_test_123"},
		ledger:      led,
		clients:     func(string) stripeapi.Client { return cli },
	}
}
