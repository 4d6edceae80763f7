package anime

// Listing is one row scraped from the wiki listing page, pre-enrichment.
// Immutable once created; the pipeline consumes it exactly once.
type Listing struct {
	ID             string `json:"id"`
	TitleNative    string `json:"title_native,omitempty"`
	TitleLocalized string `json:"title_localized,omitempty"`
	TitleFromList  string `json:"title_from_list"`
	Link           string `json:"link,omitempty"`
	RawInfoText    string `json:"raw_info_text,omitempty"`
}
