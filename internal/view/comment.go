package view

import (
	"github.com/user/hdfilm/internal/model"
)

// CommentNode 评论树节点，子评论递归嵌套
type CommentNode struct {
	ID       int           `json:"id"`
	Text     string        `json:"text"`
	Movie    int           `json:"movie"`
	User     int           `json:"user"`
	Parent   *int          `json:"parent"`
	Created  string        `json:"created"`
	Children []CommentNode `json:"children"`
}

// BuildCommentTree 一次性构建评论树
// 先按 parent 分组再挂接子节点，查询数和递归深度都有界
func BuildCommentTree(comments []*model.Comment) []CommentNode {
	byParent := groupByParent(comments)

	var roots []*model.Comment
	for _, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, c)
		}
	}

	nodes := make([]CommentNode, 0, len(roots))
	for _, c := range roots {
		nodes = append(nodes, buildNode(c, byParent))
	}
	return nodes
}

// NewCommentNode 单条评论视图（创建/更新的响应），子树从全量评论中挂接
func NewCommentNode(c *model.Comment, all []*model.Comment) CommentNode {
	return buildNode(c, groupByParent(all))
}

// NewCommentList 平铺列表视图
// 每条评论各自挂接子树，子评论会同时作为独立条目出现
func NewCommentList(comments []*model.Comment) []CommentNode {
	byParent := groupByParent(comments)

	nodes := make([]CommentNode, 0, len(comments))
	for _, c := range comments {
		nodes = append(nodes, buildNode(c, byParent))
	}
	return nodes
}

func groupByParent(comments []*model.Comment) map[int][]*model.Comment {
	byParent := make(map[int][]*model.Comment)
	for _, c := range comments {
		if c.ParentID != nil {
			byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
		}
	}
	return byParent
}

func buildNode(c *model.Comment, byParent map[int][]*model.Comment) CommentNode {
	children := byParent[c.ID]
	nodes := make([]CommentNode, 0, len(children))
	for _, child := range children {
		nodes = append(nodes, buildNode(child, byParent))
	}

	return CommentNode{
		ID:       c.ID,
		Text:     c.Text,
		Movie:    c.MovieID,
		User:     c.UserID,
		Parent:   c.ParentID,
		Created:  formatTime(c.Created),
		Children: nodes,
	}
}
