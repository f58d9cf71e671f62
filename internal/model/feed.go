package model

// FeedItem 外部影讯条目（从列表页解析）
// 源页面缺少对应节点时字段为空字符串
type FeedItem struct {
	Title string `json:"title"`
	Photo string `json:"photo"`
}
