package recovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lunarpay/reclaim/internal/platform/stripeapi"
	types "github.com/lunarpay/reclaim/pkg/types"
)

func TestListAllPaymentIntents_AccumulatesAcrossPages(t *testing.T) {
	cli := newFakeClient()
	cli.pages = []*stripeapi.ListPage{
		{
			Items:      []*stripeapi.PaymentIntent{{ID: "pi_1"}, {ID: "pi_2"}},
			HasMore:    true,
			NextCursor: "pi_2",
		},
		{
			Items:      []*stripeapi.PaymentIntent{{ID: "pi_3"}, {ID: "pi_4"}},
			HasMore:    true,
			NextCursor: "pi_4",
		},
		{
			Items:   []*stripeapi.PaymentIntent{{ID: "pi_5"}},
			HasMore: false,
		},
	}
	s := newTestService(cli, &fakeLedger{})

	all, err := s.listAllPaymentIntents(context.Background(), cli, types.TimeWindow{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	require.Len(t, cli.listCalls, 3)

	// First call carries no cursor, later calls carry the previous page's
	// last-item cursor.
	require.Empty(t, cli.listCalls[0].StartingAfter)
	require.Equal(t, "pi_2", cli.listCalls[1].StartingAfter)
	require.Equal(t, "pi_4", cli.listCalls[2].StartingAfter)
	require.Equal(t, int64(2), cli.listCalls[0].Limit)
}

func TestListAllPaymentIntents_SinglePage(t *testing.T) {
	cli := newFakeClient()
	cli.pages = []*stripeapi.ListPage{
		{Items: []*stripeapi.PaymentIntent{{ID: "pi_1"}}, HasMore: false},
	}
	s := newTestService(cli, &fakeLedger{})

	all, err := s.listAllPaymentIntents(context.Background(), cli, types.TimeWindow{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Len(t, cli.listCalls, 1)
}

func TestListAllPaymentIntents_ErrorDiscardsPartialPages(t *testing.T) {
	cli := newFakeClient()
	cli.pages = []*stripeapi.ListPage{
		{Items: []*stripeapi.PaymentIntent{{ID: "pi_1"}}, HasMore: true, NextCursor: "pi_1"},
	}
	cli.pageErrAt = 1
	s := newTestService(cli, &fakeLedger{})

	all, err := s.listAllPaymentIntents(context.Background(), cli, types.TimeWindow{})
	require.Error(t, err)
	require.ErrorIs(t, err, stripeapi.ErrUnavailable)
	require.Nil(t, all)
}

func TestListAllPaymentIntents_WindowBoundsForwarded(t *testing.T) {
	cli := newFakeClient()
	s := newTestService(cli, &fakeLedger{})

	w, err := types.NewTimeWindow("2026-01-01", "2026-01-31", 7)
	require.NoError(t, err)

	_, err = s.listAllPaymentIntents(context.Background(), cli, w)
	require.NoError(t, err)
	require.Len(t, cli.listCalls, 1)
	require.Equal(t, w.FromUnix(), cli.listCalls[0].CreatedFrom)
	require.Equal(t, w.ToUnix(), cli.listCalls[0].CreatedTo)
}
