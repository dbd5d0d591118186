package service

import (
	"context"

	"github.com/skylens/airmarket/internal/alerting"
	"github.com/skylens/airmarket/internal/models"
)

type MarketData struct {
	Data []models.MarketPoint `json:"data"`
	Meta models.ResultMeta    `json:"meta"`
}

// GetMarketData returns route-level demand data. Only the synthetic source
// exists for this operation today, so the result is always mock-tagged.
func (s *DataService) GetMarketData(ctx context.Context, origin, destination string, days int) (*MarketData, error) {
	if origin == "" {
		return nil, models.ErrMissingOrigin
	}
	if destination == "" {
		return nil, models.ErrMissingDestination
	}
	alerting.RecordRequest("market")

	points := s.cfg.Mock.MarketData(origin, destination, days)
	return &MarketData{
		Data: points,
		Meta: models.ResultMeta{
			Source:   mockSource,
			Warnings: []string{"using mock data - real market data not yet implemented"},
		},
	}, nil
}
