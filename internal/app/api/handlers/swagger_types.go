package handlers

import (
	"github.com/lunarpay/reclaim/internal/app/service/account"
	"github.com/lunarpay/reclaim/internal/app/service/ledger"
	"github.com/lunarpay/reclaim/internal/app/service/recovery"
	"github.com/lunarpay/reclaim/internal/models"
	"github.com/lunarpay/reclaim/pkg/response"
)

// Concrete response envelopes so swag can render the generic payloads.

type RespAuthResult = response.APIResponse[*account.AuthResult]

type RespUserInfo = response.APIResponse[*account.UserInfo]

type RespProfile = response.APIResponse[*profileResponse]

type RespCredentialStatus = response.APIResponse[*credentialStatusResponse]

type RespFailedTransactions = response.APIResponse[*recovery.FailedTransactionsResponse]

type RespRetryPayment = response.APIResponse[*recovery.RetryPaymentResponse]

type RespStatsSummary = response.APIResponse[*ledger.Summary]

type RespStatsMonthly = response.APIResponse[[]ledger.MonthlyPoint]

type RespStatsRecent = response.APIResponse[[]*models.Recovery]
