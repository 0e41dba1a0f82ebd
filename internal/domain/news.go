package domain

import "time"

// NewsArticle is a headline shown in the news feed
type NewsArticle struct {
	ID          string
	Title       string
	URL         string
	Source      string
	ImageURL    string
	PublishedAt time.Time
	Summary     string
}
