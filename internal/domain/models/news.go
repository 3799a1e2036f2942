package models

// Headline is a news article reduced to what the dashboard shows.
type Headline struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}
