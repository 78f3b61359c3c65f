package domain

// NewsItem представляет отдельную новость, извлечённую из RSS-ленты.
// Дата публикации хранится строкой в том виде, в каком пришла из ленты.
type NewsItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	PubDate     string `json:"pubDate"`
	ImageURL    string `json:"imageUrl,omitempty"`
}
