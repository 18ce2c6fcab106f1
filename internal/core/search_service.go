package core

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// SearchResult is one trimmed-down hit from the programmable search engine.
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// SearchService probes the Google Programmable Search API.
type SearchService struct {
	apiKey         string
	searchEngineID string
}

func NewSearchService(apiKey, searchEngineID string) *SearchService {
	return &SearchService{apiKey: apiKey, searchEngineID: searchEngineID}
}

// Search runs the query and returns at most the first three results plus the
// engine's total-results estimate.
func (s *SearchService) Search(ctx context.Context, query string) ([]SearchResult, string, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create search client: %w", err)
	}

	resp, err := svc.Cse.List().Cx(s.searchEngineID).Q(query).Context(ctx).Do()
	if err != nil {
		return nil, "", fmt.Errorf("google search request failed: %w", err)
	}

	results := make([]SearchResult, 0, 3)
	for _, item := range resp.Items {
		results = append(results, SearchResult{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
		if len(results) == 3 {
			break
		}
	}

	total := ""
	if resp.SearchInformation != nil {
		total = resp.SearchInformation.TotalResults
	}
	return results, total, nil
}
