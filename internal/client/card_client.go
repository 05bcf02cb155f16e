package client

import (
	"context"
	"encoding/json"
	"log/slog"

	"banking-suite/internal/config"
	"banking-suite/internal/domain/account"

	"github.com/shopspring/decimal"
)

type cardResponse struct {
	CardNumber      string          `json:"cardNumber"`
	MobileNumber    string          `json:"mobileNumber"`
	CardType        string          `json:"cardType"`
	TotalLimit      decimal.Decimal `json:"totalLimit"`
	AmountUsed      decimal.Decimal `json:"amountUsed"`
	AvailableAmount decimal.Decimal `json:"availableAmount"`
}

// CardClient talks to the Cards service with the same fallback contract as
// LoanClient.
type CardClient struct {
	rc *remoteClient
}

var _ account.CardClient = (*CardClient)(nil)

func NewCardClient(cfg config.RemoteClientConfig, bcfg config.BreakerConfig, logger *slog.Logger) *CardClient {
	return &CardClient{rc: newRemoteClient("cards", cfg, bcfg, logger)}
}

func (c *CardClient) FetchCardDetails(ctx context.Context, correlationID, mobileNumber string) (*account.CardDetails, error) {
	body, err := c.rc.get(ctx, correlationID, "/cards/"+mobileNumber)
	if err != nil {
		c.rc.logger.WarnContext(ctx, "Card fetch failed, falling back to empty section",
			slog.String("correlationID", correlationID),
			slog.Any("error", err),
		)
		return nil, nil
	}
	if body == nil {
		return nil, nil
	}

	var resp cardResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.rc.logger.WarnContext(ctx, "Card response could not be decoded, falling back to empty section",
			slog.String("correlationID", correlationID),
			slog.Any("error", err),
		)
		return nil, nil
	}

	return &account.CardDetails{
		CardNumber:      resp.CardNumber,
		MobileNumber:    resp.MobileNumber,
		CardType:        resp.CardType,
		TotalLimit:      resp.TotalLimit,
		AmountUsed:      resp.AmountUsed,
		AvailableAmount: resp.AvailableAmount,
	}, nil
}
