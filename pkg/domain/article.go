package domain

// Article represents a news article from a search provider,
// optionally enriched with AI curation results
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	PubDate     string `json:"pubDate"`

	// curation enrichment, populated by the curator
	ImportanceScore  float64  `json:"importanceScore"`
	ImportanceReason string   `json:"importanceReason"`
	Category         Category `json:"category"`
	Urgency          Urgency  `json:"urgency"`
	Topics           []string `json:"topics"`

	// optional derived content
	Translation string `json:"translation,omitempty"`
	Summary     string `json:"summary,omitempty"`
}

// SemanticKey returns the text used to derive the article's cache digest.
// Two articles with identical title and description share cache entries.
func (a *Article) SemanticKey() string {
	return a.Title + " " + a.Description
}

// ScrapedArticle is the result of a content extraction attempt.
// Extraction failures are reported here, never as errors.
type ScrapedArticle struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	PublishedDate string `json:"publishedDate,omitempty"`
	Author        string `json:"author,omitempty"`
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
}

// Category is the economic news category assigned by curation
type Category string

// known curation categories
const (
	CategoryMonetary      Category = "monetary"
	CategoryMarkets       Category = "markets"
	CategoryCurrency      Category = "currency"
	CategoryRealEstate    Category = "realestate"
	CategoryTrade         Category = "trade"
	CategoryCorporate     Category = "corporate"
	CategoryBanking       Category = "banking"
	CategoryPolicy        Category = "policy"
	CategoryInternational Category = "international"
	CategoryOther         Category = "other"
)

// Urgency is the urgency level assigned by curation
type Urgency string

// urgency levels
const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyBreaking Urgency = "breaking"
)
