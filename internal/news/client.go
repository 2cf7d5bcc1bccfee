package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://newsapi.org/v2"

// MaxArticles bounds every headline request.
const MaxArticles = 5

// Categories is the fixed NewsAPI category set.
var Categories = []string{"business", "entertainment", "general", "health", "science", "sports", "technology"}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

type Article struct {
	Title      string
	SourceName string
	URL        string
}

// Client is a thin NewsAPI top-headlines client.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// NewClientWithBaseURL is used by tests to point at a stub server.
func NewClientWithBaseURL(apiKey, baseURL string, timeout time.Duration) *Client {
	c := NewClient(apiKey, timeout)
	c.baseURL = baseURL
	return c
}

type headlinesResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title  string `json:"title"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		URL string `json:"url"`
	} `json:"articles"`
}

// TopHeadlines fetches up to pageSize headlines for a category.
// Fails closed: any transport/API error returns a nil list and an error.
func (c *Client) TopHeadlines(ctx context.Context, category string, pageSize int) ([]Article, error) {
	q := url.Values{}
	q.Set("category", category)
	q.Set("language", "en")
	q.Set("pageSize", strconv.Itoa(pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/top-headlines?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build headlines request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("User-Agent", "newsgenie/1.0")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi returned status %d", resp.StatusCode)
	}

	var body headlinesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode headlines response: %w", err)
	}
	if body.Status != "ok" {
		return nil, fmt.Errorf("newsapi error: %s", body.Message)
	}

	out := make([]Article, 0, len(body.Articles))
	for _, a := range body.Articles {
		out = append(out, Article{Title: a.Title, SourceName: a.Source.Name, URL: a.URL})
	}
	return out, nil
}
