package domain

// KnowledgeArticle is static reference content searchable by keyword. Articles
// are loaded once at startup and never created or destroyed at runtime.
type KnowledgeArticle struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
}
