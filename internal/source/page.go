package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/net/html"

	"github.com/Capston-25-1/Youtube-FactChecker/internal/model"
)

const (
	commentTag    = "ytd-comment-thread-renderer"
	contentTextID = "content-text"
	authorID      = "author-text"
	hashtagPrefix = "/hashtag/"
)

// Page is a Source backed by a watch-page URL. It re-fetches the page on a
// poll interval and fires the change signal when new comment units appear,
// standing in for the browser's mutation observer.
//
// Item identity across polls is keyed by a content fingerprint
// (author + text, with an occurrence counter so identical comments stay
// independent), so the same page unit resolves to the same *Item.
type Page struct {
	pageURL      string
	client       *http.Client
	userAgent    string
	maxBytes     int64
	pollInterval time.Duration

	robotsOnce sync.Once
	robotsErr  error

	mu    sync.Mutex
	items map[string]*Item
	order []string
	vctx  model.VideoContext
	subs  map[int]func()
	next  int
	stop  chan struct{}
}

// NewPage creates a page source. The client is shared with the rest of the
// pipeline so proxy and TLS settings apply uniformly.
func NewPage(pageURL string, client *http.Client, userAgent string, maxBytes int64, pollInterval time.Duration) *Page {
	return &Page{
		pageURL:      pageURL,
		client:       client,
		userAgent:    userAgent,
		maxBytes:     maxBytes,
		pollInterval: pollInterval,
		items:        make(map[string]*Item),
		subs:         make(map[int]func()),
	}
}

// Refresh fetches and re-parses the page. It returns the number of items
// that appeared since the previous refresh.
func (p *Page) Refresh(ctx context.Context) (int, error) {
	if err := p.checkRobots(ctx); err != nil {
		return 0, err
	}

	doc, err := p.fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch page: %w", err)
	}

	vctx := extractVideoContext(doc)
	comments := extractComments(doc)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.vctx = vctx

	seen := make(map[string]int)
	added := 0
	for _, c := range comments {
		base := fingerprint(c.author, c.text)
		key := fmt.Sprintf("%s#%d", base, seen[base])
		seen[base]++

		if _, ok := p.items[key]; !ok {
			p.items[key] = NewItem(c.text)
			p.order = append(p.order, key)
			added++
		}
	}
	return added, nil
}

// Items returns the current items in first-seen order.
func (p *Page) Items() []*Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Item, 0, len(p.order))
	for _, key := range p.order {
		out = append(out, p.items[key])
	}
	return out
}

// Text returns the item's display text.
func (p *Page) Text(item *Item) string {
	return item.Text()
}

// Context returns the metadata snapshot from the most recent refresh.
func (p *Page) Context() model.VideoContext {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vctx
}

// Subscribe registers a change observer. The first subscription starts the
// poll loop; cancelling the last one stops it.
func (p *Page) Subscribe(fn func()) (cancel func()) {
	p.mu.Lock()
	id := p.next
	p.next++
	p.subs[id] = fn
	if p.stop == nil {
		p.stop = make(chan struct{})
		go p.poll(p.stop)
	}
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		if len(p.subs) == 0 && p.stop != nil {
			close(p.stop)
			p.stop = nil
		}
		p.mu.Unlock()
	}
}

func (p *Page) poll(stop chan struct{}) {
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), p.pollInterval)
			added, err := p.Refresh(ctx)
			cancel()
			if err != nil || added == 0 {
				continue
			}

			p.mu.Lock()
			subs := make([]func(), 0, len(p.subs))
			for _, fn := range p.subs {
				subs = append(subs, fn)
			}
			p.mu.Unlock()
			for _, fn := range subs {
				fn()
			}
		}
	}
}

// checkRobots fetches robots.txt once and refuses the page when crawling
// is disallowed for our agent. An unreachable robots.txt allows by default.
func (p *Page) checkRobots(ctx context.Context) error {
	p.robotsOnce.Do(func() {
		parsed, err := url.Parse(p.pageURL)
		if err != nil {
			p.robotsErr = fmt.Errorf("parse URL: %w", err)
			return
		}

		robotsURL := fmt.Sprintf("%s://%s/robots.txt", parsed.Scheme, parsed.Host)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
		if err != nil {
			return
		}
		req.Header.Set("User-Agent", p.userAgent)

		resp, err := p.client.Do(req)
		if err != nil {
			return
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := robotstxt.FromResponse(resp)
		if err != nil {
			return
		}
		if !data.TestAgent(parsed.Path, p.userAgent) {
			p.robotsErr = fmt.Errorf("robots.txt disallows %s", parsed.Path)
		}
	})
	return p.robotsErr
}

func (p *Page) fetch(ctx context.Context) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	return html.Parse(io.LimitReader(resp.Body, p.maxBytes))
}

type commentNode struct {
	author string
	text   string
}

// ParseDocument extracts the video context and comment texts from an
// already-parsed page, for callers that bring their own HTML.
func ParseDocument(doc *html.Node) (model.VideoContext, []string) {
	comments := extractComments(doc)
	texts := make([]string, 0, len(comments))
	for _, c := range comments {
		texts = append(texts, c.text)
	}
	return extractVideoContext(doc), texts
}

// extractVideoContext pulls title, description and hashtags out of the page:
// og:title and description meta tags, plus /hashtag/ anchors.
func extractVideoContext(doc *html.Node) model.VideoContext {
	vctx := model.VideoContext{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				if attr(n, "property") == "og:title" {
					vctx.Title = strings.TrimSpace(attr(n, "content"))
				}
				if attr(n, "name") == "description" {
					vctx.Description = strings.TrimSpace(attr(n, "content"))
				}
			case "a":
				if strings.HasPrefix(attr(n, "href"), hashtagPrefix) {
					tag := strings.TrimSpace(strings.TrimPrefix(innerText(n), "#"))
					if tag != "" {
						vctx.Hashtags = append(vctx.Hashtags, tag)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return vctx
}

// extractComments collects comment thread nodes in document order.
func extractComments(doc *html.Node) []commentNode {
	var comments []commentNode

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == commentTag {
			text := strings.TrimSpace(innerText(findByID(n, contentTextID)))
			author := strings.TrimSpace(innerText(findByID(n, authorID)))
			if text != "" {
				comments = append(comments, commentNode{author: author, text: text})
			}
			return // comment threads do not nest
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return comments
}

func findByID(n *html.Node, id string) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func innerText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}

func fingerprint(author, text string) string {
	sum := sha256.Sum256([]byte(author + "\x00" + text))
	return hex.EncodeToString(sum[:8])
}
