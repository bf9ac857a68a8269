package fetchers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"taxdash/internal/logger"
	"taxdash/internal/models"
)

// SummaryFetcher pulls summary payloads from the external scheduler endpoint
type SummaryFetcher struct {
	client *resty.Client
	log    *logger.Logger
}

// NewSummaryFetcher creates a fetcher with retries suitable for a periodic
// poll loop.
func NewSummaryFetcher(timeout time.Duration) *SummaryFetcher {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(2 * time.Second)

	return &SummaryFetcher{
		client: client,
		log:    logger.GetGlobalLogger().WithComponent("fetcher"),
	}
}

// FetchSummary fetches and decodes one summary payload. Malformed payload
// sections are dropped with a warning; the usable sections come back.
func (f *SummaryFetcher) FetchSummary(ctx context.Context, url string) (*models.SummaryPayload, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch summary payload: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("summary endpoint returned status %d", resp.StatusCode())
	}

	payload, warnings, err := models.ParseSummaryPayload(resp.Body())
	if err != nil {
		return nil, err
	}
	for _, warning := range warnings {
		f.log.Warnf("summary payload: %s", warning)
	}

	return payload, nil
}

// Poll fetches the summary endpoint on the given interval and hands each
// payload to deliver, serially. The loop owns the delivery ordering: the
// chart binder does no locking of its own, so overlapping updates must
// never be dispatched from here.
func (f *SummaryFetcher) Poll(ctx context.Context, url string, interval time.Duration, deliver func(*models.SummaryPayload)) {
	f.log.Infof("polling %s every %s", url, interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		payload, err := f.FetchSummary(ctx, url)
		if err != nil {
			f.log.Error("summary fetch failed", err)
		} else {
			deliver(payload)
		}

		select {
		case <-ctx.Done():
			f.log.Info("summary polling stopped")
			return
		case <-ticker.C:
		}
	}
}
