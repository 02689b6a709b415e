package scraper

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/unighana/unighana-backend/internal/domain"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

var deadlinePrefix = regexp.MustCompile(`^.*?:\s*`)

// Scraper fetches and parses a university admissions announcement page.
// It is stateless; callers wanting caching wrap it in a Refresher.
type Scraper struct {
	url        string
	httpClient *http.Client
}

func New(url string) *Scraper {
	return &Scraper{
		url:        url,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *Scraper) Fetch(ctx context.Context) (*domain.AdmissionDetails, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch admissions page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch admissions page: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse admissions page: %w", err)
	}

	return Parse(doc)
}

// Parse extracts admission details from the announcement markup.
func Parse(doc *goquery.Document) (*domain.AdmissionDetails, error) {
	annInfo := doc.Find(".ann-info").First()
	if annInfo.Length() == 0 {
		return nil, fmt.Errorf("announcement info section not found")
	}

	details := &domain.AdmissionDetails{
		PublishedDate:       strings.TrimSpace(doc.Find(".post-meta .post-date").First().Text()),
		ApplicationDeadline: "Not found",
	}

	// The second paragraph holds the announcement summary.
	paragraphs := annInfo.Find("p")
	if paragraphs.Length() > 1 {
		details.Description = strings.TrimSpace(paragraphs.Eq(1).Text())
	}

	annInfo.Find("h3").Each(func(_ int, heading *goquery.Selection) {
		title := heading.Text()
		switch {
		case strings.Contains(title, "Application Deadlines"):
			next := heading.Next()
			if goquery.NodeName(next) == "ol" {
				if li := next.Find("li").First(); li.Length() > 0 {
					details.ApplicationDeadline = deadlinePrefix.ReplaceAllString(strings.TrimSpace(li.Text()), "")
				}
			}
		case strings.Contains(title, "Programmes of Study"):
			for el := heading.Next(); el.Length() > 0; el = el.Next() {
				name := goquery.NodeName(el)
				if name == "h3" || name == "h2" {
					break
				}
				if name == "ul" {
					el.Find("li").Each(func(_ int, li *goquery.Selection) {
						details.Courses = append(details.Courses, strings.TrimSpace(li.Text()))
					})
				}
			}
		}
	})

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cols := row.Find("td")
		if cols.Length() < 2 {
			return
		}
		kind := strings.ToLower(strings.TrimSpace(cols.Eq(0).Text()))
		cost := strings.TrimSpace(cols.Eq(1).Text())
		switch {
		case strings.Contains(kind, "ghanaian applicants"):
			details.ApplicationFees.Ghanaian = cost
		case strings.Contains(kind, "international applicants"):
			details.ApplicationFees.International = cost
		}
	})

	annInfo.Find("ol li, ul li").Each(func(_ int, li *goquery.Selection) {
		if text := strings.TrimSpace(li.Text()); text != "" {
			details.AdmissionRequirements = append(details.AdmissionRequirements, text)
		}
	})

	return details, nil
}
