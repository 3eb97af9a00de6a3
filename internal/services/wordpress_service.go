package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bizlens/internal/models/db_models"
	"bizlens/internal/models/response_models"
	"bizlens/internal/repositories"
	"bizlens/pkg/utils"
)

const (
	wpPostsPerPage  = 20
	wpMaxSyncPages  = 50
	articleListSize = 20
)

var ErrWordPressNotConfigured = errors.New(
	"WORDPRESS_BASE_URL is not configured. Set it to the root of the WordPress site, " +
		"e.g. https://blog.example.com, and restart; the sync reads its public wp-json API")

// wpPost is the subset of the wp-json v2 post payload the sync keeps.
type wpPost struct {
	ID      int64  `json:"id"`
	DateGMT string `json:"date_gmt"`
	Link    string `json:"link"`
	Title   struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	Excerpt struct {
		Rendered string `json:"rendered"`
	} `json:"excerpt"`
}

type WordPressServiceInterface interface {
	SyncPosts(ctx context.Context) (response_models.SyncSummary, error)
	ListArticles(ctx context.Context) ([]response_models.ArticleResponse, error)
}

type WordPressService struct {
	httpClient        *http.Client
	baseURL           string
	articleRepository repositories.ArticleRepository
}

func NewWordPressService(baseURL string, articleRepository repositories.ArticleRepository) WordPressServiceInterface {
	return &WordPressService{
		httpClient:        &http.Client{Timeout: 15 * time.Second},
		baseURL:           strings.TrimSuffix(baseURL, "/"),
		articleRepository: articleRepository,
	}
}

func (w *WordPressService) SyncPosts(ctx context.Context) (response_models.SyncSummary, error) {
	if w.baseURL == "" {
		return response_models.SyncSummary{}, ErrWordPressNotConfigured
	}

	summary := response_models.SyncSummary{Success: true}

	for page := 1; page <= wpMaxSyncPages; page++ {
		posts, totalPages, err := w.fetchPage(ctx, page)
		if err != nil {
			log.Printf("Error fetching WordPress page %d: %v", page, err)
			summary.Success = false
			summary.Errors = append(summary.Errors, response_models.UnitError{
				ID:    fmt.Sprintf("page-%d", page),
				Error: err.Error(),
			})
			break
		}

		summary.Fetched += len(posts)
		for _, post := range posts {
			created, err := w.upsertPost(ctx, post)
			if err != nil {
				log.Printf("Error upserting post %d: %v", post.ID, err)
				summary.Errors = append(summary.Errors, response_models.UnitError{
					ID:    strconv.FormatInt(post.ID, 10),
					Error: err.Error(),
				})
				continue
			}
			if created {
				summary.Created++
			} else {
				summary.Updated++
			}
		}

		if len(posts) < wpPostsPerPage {
			break
		}
		if totalPages > 0 && page >= totalPages {
			break
		}
	}

	return summary, nil
}

func (w *WordPressService) fetchPage(ctx context.Context, page int) ([]wpPost, int, error) {
	u, err := url.Parse(w.baseURL + "/wp-json/wp/v2/posts")
	if err != nil {
		return nil, 0, fmt.Errorf("bad wordpress base url: %w", err)
	}
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(wpPostsPerPage))
	q.Set("page", strconv.Itoa(page))
	q.Set("_fields", "id,date_gmt,link,title,excerpt")
	u.RawQuery = q.Encode()

	req, _ := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("wordpress http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, 0, fmt.Errorf("wordpress bad status: %s", resp.Status)
	}

	totalPages, _ := strconv.Atoi(resp.Header.Get("X-WP-TotalPages"))

	var posts []wpPost
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, 0, fmt.Errorf("wordpress decode: %w", err)
	}
	return posts, totalPages, nil
}

func (w *WordPressService) upsertPost(ctx context.Context, post wpPost) (bool, error) {
	publishedAt := int64(0)
	// date_gmt has no zone suffix; it is UTC by contract.
	if t, err := time.Parse("2006-01-02T15:04:05", post.DateGMT); err == nil {
		publishedAt = t.Unix()
	}

	article := &db_models.Article{
		WPID:        post.ID,
		Title:       cleanRendered(post.Title.Rendered),
		Excerpt:     cleanRendered(post.Excerpt.Rendered),
		URL:         post.Link,
		PublishedAt: publishedAt,
	}
	return w.articleRepository.UpsertByWPID(ctx, article)
}

// cleanRendered strips the markup WordPress wraps around rendered fields and
// decodes entities, leaving plain text for list views.
func cleanRendered(rendered string) string {
	var b strings.Builder
	inTag := false
	for _, r := range rendered {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(html.UnescapeString(b.String()))
}

func (w *WordPressService) ListArticles(ctx context.Context) ([]response_models.ArticleResponse, error) {
	articles, err := w.articleRepository.ListRecent(ctx, articleListSize)
	if err != nil {
		log.Printf("Error listing articles: %v", err)
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.ArticleResponse, 0, len(articles))
	for _, article := range articles {
		responses = append(responses, toArticleResponse(article))
	}
	return responses, nil
}
