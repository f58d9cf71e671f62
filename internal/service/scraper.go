package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/patrickmn/go-cache"
	"github.com/user/hdfilm/internal/model"
	"golang.org/x/sync/singleflight"
)

// feedCacheKey 影讯列表的缓存键（单一来源，只有一个键）
const feedCacheKey = "feed"

// FeedScraper 外部影讯列表爬虫
// 不做并发抓取，缓存解析结果，singleflight 合并并发请求
type FeedScraper struct {
	client  *http.Client
	feedURL string
	cache   *cache.Cache
	sf      singleflight.Group
}

// NewFeedScraper 创建影讯爬虫
func NewFeedScraper(feedURL string, timeout time.Duration) *FeedScraper {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &FeedScraper{
		client: &http.Client{
			Timeout: timeout,
		},
		feedURL: feedURL,
		// 默认过期时间15分钟，清理间隔30分钟
		cache: cache.New(15*time.Minute, 30*time.Minute),
		sf:    singleflight.Group{},
	}
}

// Fetch 获取影讯列表，优先缓存
func (s *FeedScraper) Fetch(ctx context.Context) ([]model.FeedItem, error) {
	if cached, found := s.cache.Get(feedCacheKey); found {
		if items, ok := cached.([]model.FeedItem); ok {
			return items, nil
		}
	}

	// 使用 singleflight 避免并发重复抓取
	v, err, _ := s.sf.Do(feedCacheKey, func() (interface{}, error) {
		items, err := s.scrape(ctx)
		if err != nil {
			return nil, err
		}
		s.cache.Set(feedCacheKey, items, cache.DefaultExpiration)
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]model.FeedItem), nil
}

// scrape 抓取并解析影讯列表页
func (s *FeedScraper) scrape(ctx context.Context) ([]model.FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("请求返回状态码: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("解析页面失败: %w", err)
	}

	return ParseFeed(doc), nil
}

// ParseFeed 从列表页文档中解析影讯条目
// 标题或海报节点缺失时对应字段为空字符串
func ParseFeed(doc *goquery.Document) []model.FeedItem {
	items := []model.FeedItem{}

	doc.Find("div.movieList.movieList-grid.grid").
		Find("div.movieList_item.movieItem.movieItem-grid.grid_cell4").
		Each(func(i int, sel *goquery.Selection) {
			photo := sel.Find("img.picture_image").AttrOr("data-picture", "")
			title := sel.Find("span.movieItem_title").Text()
			title = strings.TrimSpace(strings.ReplaceAll(title, "\n", ""))

			items = append(items, model.FeedItem{
				Title: title,
				Photo: photo,
			})
		})

	return items
}
