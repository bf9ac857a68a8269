package fetchers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"

	"taxdash/internal/logger"
)

// Announcement is one filing-authority notice rendered on the dashboard
type Announcement struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Published time.Time `json:"published"`
}

// AnnouncementsFetcher reads the filing-authority RSS feed
type AnnouncementsFetcher struct {
	client *resty.Client
	parser *gofeed.Parser
	log    *logger.Logger
}

// NewAnnouncementsFetcher creates an announcements fetcher
func NewAnnouncementsFetcher(timeout time.Duration) *AnnouncementsFetcher {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(2)
	client.SetRetryWaitTime(2 * time.Second)

	return &AnnouncementsFetcher{
		client: client,
		parser: gofeed.NewParser(),
		log:    logger.GetGlobalLogger().WithComponent("announcements"),
	}
}

// Fetch returns up to limit announcements, newest first. Items without a
// parseable publish date are kept, dated as zero, at the end.
func (f *AnnouncementsFetcher) Fetch(ctx context.Context, url string, limit int) ([]Announcement, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch announcements feed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("announcements feed returned status %d", resp.StatusCode())
	}

	feed, err := f.parser.ParseString(string(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse announcements feed: %w", err)
	}

	announcements := make([]Announcement, 0, len(feed.Items))
	for _, item := range feed.Items {
		entry := Announcement{
			Title: item.Title,
			Link:  item.Link,
		}
		if item.PublishedParsed != nil {
			entry.Published = *item.PublishedParsed
		}
		announcements = append(announcements, entry)
	}

	// Feed items usually arrive newest first already; trust the feed order
	// and just cap the list.
	if limit > 0 && limit < len(announcements) {
		announcements = announcements[:limit]
	}

	f.log.Debugf("fetched %d announcements", len(announcements))
	return announcements, nil
}
