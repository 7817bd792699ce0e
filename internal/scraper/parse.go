package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/khrees2412/internly/pkg/models"
)

const maxResponsibilities = 30

// platformHosts maps listing-site hosts to the platform names the verifier knows
var platformHosts = map[string]string{
	"linkedin.com":    "LinkedIn",
	"internshala.com": "Internshala",
	"wellfound.com":   "Wellfound",
	"naukri.com":      "Naukri",
	"indeed.com":      "Indeed",
	"glassdoor.com":   "Glassdoor",
	"glassdoor.co.in": "Glassdoor",
	"aicte-india.org": "AICTE",
}

var (
	titleSelectors   = []string{`[itemprop="title"]`, ".job-title", ".profile", "h1"}
	companySelectors = []string{
		`[itemprop="hiringOrganization"] [itemprop="name"]`,
		".company-name", ".company", "[data-company]",
	}
	locationSelectors = []string{`[itemprop="jobLocation"]`, ".location", ".job-location"}
	stipendSelectors  = []string{".stipend", `[itemprop="baseSalary"]`, ".salary"}
	durationSelectors = []string{".duration", ".internship-duration"}
	skillSelectors    = []string{".skills li", ".skill", "[data-skill]", ".round_tabs"}
	contentSelectors  = []string{
		".job-description", "#job-description", ".internship-details",
		".posting-content", ".job-details", "[data-testid='job-description']",
		"main", "article",
	}

	stipendPattern = regexp.MustCompile(`₹\s*[\d,]+(?:\s*(?:-|to)\s*₹?\s*[\d,]+)?(?:\s*/\s*month)?`)
	spaceRun       = regexp.MustCompile(`\s+`)
)

// ParseListingHTML extracts a draft listing from a rendered page. The
// company domain is taken from the page host unless the host is a known
// listing platform, in which case the platform is set instead. Any other
// host leaves the platform empty.
func ParseListingHTML(pageURL, html string) (*models.InternshipListing, error) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid listing URL %q", pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script, style, noscript, nav, footer").Remove()

	l := &models.InternshipListing{
		Title:     firstText(doc, titleSelectors),
		Company:   firstText(doc, companySelectors),
		Location:  firstText(doc, locationSelectors),
		Stipend:   firstText(doc, stipendSelectors),
		Duration:  firstText(doc, durationSelectors),
		SourceURL: pageURL,
	}
	if l.Title == "" {
		l.Title = metaContent(doc, "og:title")
	}
	if l.Title == "" {
		l.Title = clean(doc.Find("title").First().Text())
	}
	if l.Company == "" {
		l.Company = metaContent(doc, "og:site_name")
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if platform, ok := platformForHost(host); ok {
		l.Platform = platform
	} else {
		// the page cannot vouch for where it was listed
		l.CompanyDomain = host
	}

	content := mainContent(doc)
	if l.Stipend == "" {
		l.Stipend = stipendPattern.FindString(content.Text())
	}
	l.Responsibilities = listItems(content)
	l.RequiredSkills = skills(doc)

	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func platformForHost(host string) (string, bool) {
	for h, name := range platformHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return name, true
		}
	}
	return "", false
}

func clean(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if text := clean(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func metaContent(doc *goquery.Document, property string) string {
	content, _ := doc.Find(`meta[property="` + property + `"]`).Attr("content")
	return clean(content)
}

func mainContent(doc *goquery.Document) *goquery.Selection {
	for _, sel := range contentSelectors {
		if s := doc.Find(sel); s.Length() > 0 {
			return s.First()
		}
	}
	return doc.Find("body")
}

func listItems(s *goquery.Selection) []string {
	items := []string{}
	s.Find("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		// skill chips are not responsibilities
		if li.Closest(".skills").Length() > 0 {
			return true
		}
		if text := clean(li.Text()); text != "" {
			items = append(items, text)
		}
		return len(items) < maxResponsibilities
	})
	return items
}

func skills(doc *goquery.Document) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, sel := range skillSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			name, ok := s.Attr("data-skill")
			if !ok {
				name = s.Text()
			}
			name = clean(name)
			key := strings.ToLower(name)
			if name == "" || seen[key] {
				return
			}
			seen[key] = true
			out = append(out, name)
		})
	}
	return out
}
