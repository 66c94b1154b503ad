package handler

import (
	"context"
	"encoding/xml"
	"net/http"
	"time"

	"github.com/hitoshi/blogman/internal/model"
)

// PostLister はRSSフィードの生成に必要なインターフェース。
// post.Serviceの部分集合として定義する。
type PostLister interface {
	List(ctx context.Context) ([]model.BlogPost, error)
}

// FeedHandler は記事一覧のRSS 2.0フィードを配信するHTTPハンドラー。
type FeedHandler struct {
	posts   PostLister
	baseURL string
	title   string
	desc    string
}

// NewFeedHandler はFeedHandlerを生成する。baseURLは記事リンクの生成に使用する。
func NewFeedHandler(posts PostLister, baseURL string) *FeedHandler {
	return &FeedHandler{
		posts:   posts,
		baseURL: baseURL,
		title:   "blogman",
		desc:    "記事一覧",
	}
}

// rssFeed はRSS 2.0のルート要素。
type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

// rssChannel はRSS 2.0のchannel要素。
type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

// rssItem はRSS 2.0のitem要素。
type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate"`
}

// Feed は全記事を新しい順で含むRSS 2.0フィードを返す。
// GET /feed.xml
func (h *FeedHandler) Feed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		serverError(w, "failed to list posts for feed", err)
		return
	}

	items := make([]rssItem, len(posts))
	for i, p := range posts {
		items[i] = rssItem{
			Title:       p.Title,
			Link:        h.baseURL + "/post/" + p.ID,
			Description: p.Subtitle,
			GUID:        h.baseURL + "/post/" + p.ID,
			PubDate:     p.CreatedAt.Format(time.RFC1123Z),
		}
	}

	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:       h.title,
			Link:        h.baseURL,
			Description: h.desc,
			Items:       items,
		},
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(feed); err != nil {
		// ヘッダー送信後のため500には切り替えない
		return
	}
}
