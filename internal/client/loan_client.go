package client

import (
	"context"
	"encoding/json"
	"log/slog"

	"banking-suite/internal/config"
	"banking-suite/internal/domain/account"

	"github.com/shopspring/decimal"
)

type loanResponse struct {
	LoanNumber        string          `json:"loanNumber"`
	MobileNumber      string          `json:"mobileNumber"`
	LoanType          string          `json:"loanType"`
	TotalLoan         decimal.Decimal `json:"totalLoan"`
	AmountPaid        decimal.Decimal `json:"amountPaid"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
}

// LoanClient talks to the Loans service. Any failure, including an open
// breaker, degrades to (nil, nil) so customer details can still be served
// without the loan section.
type LoanClient struct {
	rc *remoteClient
}

var _ account.LoanClient = (*LoanClient)(nil)

func NewLoanClient(cfg config.RemoteClientConfig, bcfg config.BreakerConfig, logger *slog.Logger) *LoanClient {
	return &LoanClient{rc: newRemoteClient("loans", cfg, bcfg, logger)}
}

func (c *LoanClient) FetchLoanDetails(ctx context.Context, correlationID, mobileNumber string) (*account.LoanDetails, error) {
	body, err := c.rc.get(ctx, correlationID, "/loans/"+mobileNumber)
	if err != nil {
		c.rc.logger.WarnContext(ctx, "Loan fetch failed, falling back to empty section",
			slog.String("correlationID", correlationID),
			slog.Any("error", err),
		)
		return nil, nil
	}
	if body == nil {
		return nil, nil
	}

	var resp loanResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.rc.logger.WarnContext(ctx, "Loan response could not be decoded, falling back to empty section",
			slog.String("correlationID", correlationID),
			slog.Any("error", err),
		)
		return nil, nil
	}

	return &account.LoanDetails{
		LoanNumber:        resp.LoanNumber,
		MobileNumber:      resp.MobileNumber,
		LoanType:          resp.LoanType,
		TotalLoan:         resp.TotalLoan,
		AmountPaid:        resp.AmountPaid,
		OutstandingAmount: resp.OutstandingAmount,
	}, nil
}
