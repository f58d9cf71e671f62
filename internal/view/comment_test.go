package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/hdfilm/internal/model"
)

func comment(id int, parent *int, text string) *model.Comment {
	return &model.Comment{
		ID:       id,
		UserID:   1,
		MovieID:  1,
		ParentID: parent,
		Text:     text,
		Created:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildCommentTree(t *testing.T) {
	p1, p2 := 1, 2

	comments := []*model.Comment{
		comment(1, nil, "root a"),
		comment(2, &p1, "child of a"),
		comment(3, &p2, "grandchild"),
		comment(4, nil, "root b"),
	}

	tree := BuildCommentTree(comments)
	require.Len(t, tree, 2)

	assert.Equal(t, "root a", tree[0].Text)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "child of a", tree[0].Children[0].Text)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "grandchild", tree[0].Children[0].Children[0].Text)

	assert.Equal(t, "root b", tree[1].Text)
	assert.Empty(t, tree[1].Children)
}

func TestBuildCommentTreeEmpty(t *testing.T) {
	assert.Empty(t, BuildCommentTree(nil))
}

func TestNewCommentNodeSubtree(t *testing.T) {
	p2 := 2

	all := []*model.Comment{
		comment(1, nil, "root"),
		comment(2, nil, "other root"),
		comment(3, &p2, "reply"),
	}

	// 从任意节点构建，只带自己的子树
	node := NewCommentNode(all[1], all)
	assert.Equal(t, 2, node.ID)
	require.Len(t, node.Children, 1)
	assert.Equal(t, "reply", node.Children[0].Text)

	leaf := NewCommentNode(all[2], all)
	assert.Empty(t, leaf.Children)
}

func TestNewCommentList(t *testing.T) {
	p1 := 1

	comments := []*model.Comment{
		comment(1, nil, "root"),
		comment(2, &p1, "reply"),
	}

	// 平铺列表：每条评论一个条目，各自带子树和格式化时间
	list := NewCommentList(comments)
	require.Len(t, list, 2)

	assert.Equal(t, 1, list[0].ID)
	require.Len(t, list[0].Children, 1)
	assert.Equal(t, "reply", list[0].Children[0].Text)
	assert.Equal(t, "01 May 2024 12:00", list[0].Created)

	assert.Equal(t, 2, list[1].ID)
	assert.Empty(t, list[1].Children)
}

func TestCommentCreatedFormat(t *testing.T) {
	node := NewCommentNode(comment(1, nil, "hi"), nil)
	assert.Equal(t, "01 May 2024 12:00", node.Created)
}
