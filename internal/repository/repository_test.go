package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/hdfilm/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRepos 每个测试一个独立的内存数据库
func setupRepos(t *testing.T) *Repositories {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	return NewRepositories(db)
}

func seedUser(t *testing.T, repos *Repositories, email string) *model.User {
	t.Helper()
	user, err := repos.User.Create(email, "tester", "password123")
	require.NoError(t, err)
	return user
}

func seedMovie(t *testing.T, repos *Repositories, genreSlug, title string) *model.Movie {
	t.Helper()
	movie := &model.Movie{
		Title:     title,
		GenreSlug: genreSlug,
	}
	require.NoError(t, repos.Movie.Create(movie, nil))
	return movie
}

func seedGenre(t *testing.T, repos *Repositories, title string) *model.Genre {
	t.Helper()
	genre := &model.Genre{Title: title}
	require.NoError(t, repos.Genre.Create(genre))
	return genre
}

func TestUserCreateAndActivate(t *testing.T) {
	repos := setupRepos(t)

	user := seedUser(t, repos, "new@example.com")
	assert.False(t, user.IsActive)
	assert.NotEmpty(t, user.ActivationCode)
	assert.Equal(t, "user", user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)

	found, err := repos.User.FindByActivationCode(user.ActivationCode)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	require.NoError(t, repos.User.Activate(user.ID))

	activated, err := repos.User.FindByID(user.ID)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	// 激活码只能兑换一次
	gone, err := repos.User.FindByActivationCode(user.ActivationCode)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestUserCheckPassword(t *testing.T) {
	repos := setupRepos(t)

	user := seedUser(t, repos, "pw@example.com")
	assert.True(t, repos.User.CheckPassword(user, "password123"))
	assert.False(t, repos.User.CheckPassword(user, "wrong"))
}

func TestUserFindByEmailNotFound(t *testing.T) {
	repos := setupRepos(t)

	user, err := repos.User.FindByEmail("missing@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestGenreSlugFromTitle(t *testing.T) {
	repos := setupRepos(t)

	genre := seedGenre(t, repos, "Science Fiction")
	assert.Equal(t, "science-fiction", genre.Slug)
}

func TestLikeToggle(t *testing.T) {
	repos := setupRepos(t)

	user := seedUser(t, repos, "like@example.com")
	genre := seedGenre(t, repos, "Drama")
	movie := seedMovie(t, repos, genre.Slug, "Parasite")

	// 首次切换为点赞
	like, err := repos.Like.Toggle(user.ID, movie.ID)
	require.NoError(t, err)
	assert.True(t, like.Liked)

	// 再次切换取消
	like, err = repos.Like.Toggle(user.ID, movie.ID)
	require.NoError(t, err)
	assert.False(t, like.Liked)

	// 第三次恢复
	like, err = repos.Like.Toggle(user.ID, movie.ID)
	require.NoError(t, err)
	assert.True(t, like.Liked)

	// 始终只有一条记录
	all, err := repos.Like.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFavoriteToggle(t *testing.T) {
	repos := setupRepos(t)

	user := seedUser(t, repos, "fav@example.com")
	genre := seedGenre(t, repos, "Drama")
	movie := seedMovie(t, repos, genre.Slug, "Parasite")

	favorite, err := repos.Favorite.Toggle(user.ID, movie.ID)
	require.NoError(t, err)
	assert.True(t, favorite.Favorited)

	favorite, err = repos.Favorite.Toggle(user.ID, movie.ID)
	require.NoError(t, err)
	assert.False(t, favorite.Favorited)

	// 取消后的收藏不出现在用户生效列表里
	active, err := repos.Favorite.ListFavoritedByUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestRatingOverwrite(t *testing.T) {
	repos := setupRepos(t)

	user := seedUser(t, repos, "rate@example.com")
	genre := seedGenre(t, repos, "Drama")
	movie := seedMovie(t, repos, genre.Slug, "Parasite")

	rating, err := repos.Rating.Rate(user.ID, movie.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, rating.Rating)

	// 重复评分覆盖旧值，不产生新记录
	rating, err = repos.Rating.Rate(user.ID, movie.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, rating.Rating)

	all, err := repos.Rating.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 2, all[0].Rating)
}

func TestHistoryTouchRefreshes(t *testing.T) {
	repos := setupRepos(t)

	user := seedUser(t, repos, "history@example.com")
	genre := seedGenre(t, repos, "Drama")
	movie := seedMovie(t, repos, genre.Slug, "Parasite")

	require.NoError(t, repos.History.Touch(user.ID, movie.ID))

	first, err := repos.History.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, first, 1)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repos.History.Touch(user.ID, movie.ID))

	second, err := repos.History.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.True(t, second[0].Created.After(first[0].Created))

	count, err := repos.History.CountByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMovieSearchCaseInsensitive(t *testing.T) {
	repos := setupRepos(t)

	genre := seedGenre(t, repos, "Drama")
	seedMovie(t, repos, genre.Slug, "Parasite")
	seedMovie(t, repos, genre.Slug, "Oldboy")

	withDesc := &model.Movie{
		Title:       "Memories of Murder",
		Description: "A paranoid hunt for a serial killer",
		GenreSlug:   genre.Slug,
	}
	require.NoError(t, repos.Movie.Create(withDesc, nil))

	// 标题和简介都参与匹配，大小写不敏感
	for _, q := range []string{"para", "PARA", "Para"} {
		movies, err := repos.Movie.Search(q)
		require.NoError(t, err)
		assert.Len(t, movies, 2, "query %q", q)
	}

	movies, err := repos.Movie.Search("oldboy")
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Oldboy", movies[0].Title)
}

func TestMovieListWithMinRating(t *testing.T) {
	repos := setupRepos(t)

	alice := seedUser(t, repos, "alice@example.com")
	bob := seedUser(t, repos, "bob@example.com")
	genre := seedGenre(t, repos, "Drama")
	good := seedMovie(t, repos, genre.Slug, "Parasite")
	bad := seedMovie(t, repos, genre.Slug, "Flop")
	seedMovie(t, repos, genre.Slug, "Unrated")

	_, err := repos.Rating.Rate(alice.ID, good.ID, 5)
	require.NoError(t, err)
	_, err = repos.Rating.Rate(bob.ID, good.ID, 4)
	require.NoError(t, err)
	_, err = repos.Rating.Rate(alice.ID, bad.ID, 2)
	require.NoError(t, err)

	movies, err := repos.Movie.ListWithMinRating(4)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Parasite", movies[0].Title)
}

func TestMovieStats(t *testing.T) {
	repos := setupRepos(t)

	alice := seedUser(t, repos, "alice@example.com")
	bob := seedUser(t, repos, "bob@example.com")
	genre := seedGenre(t, repos, "Drama")
	movie := seedMovie(t, repos, genre.Slug, "Parasite")

	_, err := repos.Like.Toggle(alice.ID, movie.ID)
	require.NoError(t, err)
	// bob 点了又取消，不计入
	_, err = repos.Like.Toggle(bob.ID, movie.ID)
	require.NoError(t, err)
	_, err = repos.Like.Toggle(bob.ID, movie.ID)
	require.NoError(t, err)

	_, err = repos.Rating.Rate(alice.ID, movie.ID, 5)
	require.NoError(t, err)
	_, err = repos.Rating.Rate(bob.ID, movie.ID, 4)
	require.NoError(t, err)

	require.NoError(t, repos.Comment.Create(&model.Comment{
		UserID: alice.ID, MovieID: movie.ID, Text: "great",
	}))

	stats, err := repos.Movie.Stats(movie.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Likes)
	assert.Equal(t, int64(1), stats.Comments)
	assert.InDelta(t, 4.5, stats.AvgRating, 0.001)
}

func TestMovieStatsEmpty(t *testing.T) {
	repos := setupRepos(t)

	genre := seedGenre(t, repos, "Drama")
	movie := seedMovie(t, repos, genre.Slug, "Parasite")

	stats, err := repos.Movie.Stats(movie.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.Likes)
	assert.Zero(t, stats.Comments)
	assert.Zero(t, stats.AvgRating)
}

func TestMovieUpdateReplacesImages(t *testing.T) {
	repos := setupRepos(t)

	genre := seedGenre(t, repos, "Drama")
	movie := &model.Movie{Title: "Parasite", GenreSlug: genre.Slug}
	require.NoError(t, repos.Movie.Create(movie, []string{"a.jpg", "b.jpg"}))

	movie.Title = "Parasite (2019)"
	require.NoError(t, repos.Movie.Update(movie, []string{"c.jpg"}))

	updated, err := repos.Movie.FindByID(movie.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Parasite (2019)", updated.Title)
	require.Len(t, updated.Images, 1)
	assert.Equal(t, "c.jpg", updated.Images[0].Image)
}

func TestMovieDeleteCascades(t *testing.T) {
	repos := setupRepos(t)

	user := seedUser(t, repos, "cascade@example.com")
	genre := seedGenre(t, repos, "Drama")
	movie := &model.Movie{Title: "Parasite", GenreSlug: genre.Slug}
	require.NoError(t, repos.Movie.Create(movie, []string{"a.jpg"}))

	require.NoError(t, repos.Comment.Create(&model.Comment{
		UserID: user.ID, MovieID: movie.ID, Text: "hi",
	}))
	_, err := repos.Like.Toggle(user.ID, movie.ID)
	require.NoError(t, err)
	_, err = repos.Rating.Rate(user.ID, movie.ID, 3)
	require.NoError(t, err)
	require.NoError(t, repos.History.Touch(user.ID, movie.ID))

	require.NoError(t, repos.Movie.Delete(movie.ID))

	found, err := repos.Movie.FindByID(movie.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	comments, err := repos.Comment.ListByMovie(movie.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	likes, err := repos.Like.ListAll()
	require.NoError(t, err)
	assert.Empty(t, likes)

	ratings, err := repos.Rating.ListAll()
	require.NoError(t, err)
	assert.Empty(t, ratings)

	count, err := repos.History.CountByUser(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGenreDeleteCascades(t *testing.T) {
	repos := setupRepos(t)

	user := seedUser(t, repos, "cascade@example.com")
	drama := seedGenre(t, repos, "Drama")
	comedy := seedGenre(t, repos, "Comedy")
	inDrama := seedMovie(t, repos, drama.Slug, "Parasite")
	inComedy := seedMovie(t, repos, comedy.Slug, "Hot Fuzz")

	require.NoError(t, repos.Comment.Create(&model.Comment{
		UserID: user.ID, MovieID: inDrama.ID, Text: "hi",
	}))

	require.NoError(t, repos.Genre.Delete(drama.Slug))

	gone, err := repos.Genre.FindBySlug(drama.Slug)
	require.NoError(t, err)
	assert.Nil(t, gone)

	movie, err := repos.Movie.FindByID(inDrama.ID)
	require.NoError(t, err)
	assert.Nil(t, movie)

	comments, err := repos.Comment.ListByMovie(inDrama.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	// 其他分类不受影响
	survivor, err := repos.Movie.FindByID(inComedy.ID)
	require.NoError(t, err)
	assert.NotNil(t, survivor)
}

func TestCommentDeleteRecursive(t *testing.T) {
	repos := setupRepos(t)

	user := seedUser(t, repos, "comment@example.com")
	genre := seedGenre(t, repos, "Drama")
	movie := seedMovie(t, repos, genre.Slug, "Parasite")

	root := &model.Comment{UserID: user.ID, MovieID: movie.ID, Text: "root"}
	require.NoError(t, repos.Comment.Create(root))

	child := &model.Comment{UserID: user.ID, MovieID: movie.ID, ParentID: &root.ID, Text: "child"}
	require.NoError(t, repos.Comment.Create(child))

	grandchild := &model.Comment{UserID: user.ID, MovieID: movie.ID, ParentID: &child.ID, Text: "grandchild"}
	require.NoError(t, repos.Comment.Create(grandchild))

	sibling := &model.Comment{UserID: user.ID, MovieID: movie.ID, Text: "sibling"}
	require.NoError(t, repos.Comment.Create(sibling))

	require.NoError(t, repos.Comment.Delete(root.ID))

	remaining, err := repos.Comment.ListByMovie(movie.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "sibling", remaining[0].Text)
}

func TestUserDeleteCascades(t *testing.T) {
	repos := setupRepos(t)

	user := seedUser(t, repos, "bye@example.com")
	other := seedUser(t, repos, "stay@example.com")
	genre := seedGenre(t, repos, "Drama")
	movie := seedMovie(t, repos, genre.Slug, "Parasite")

	require.NoError(t, repos.Comment.Create(&model.Comment{
		UserID: user.ID, MovieID: movie.ID, Text: "mine",
	}))
	require.NoError(t, repos.Comment.Create(&model.Comment{
		UserID: other.ID, MovieID: movie.ID, Text: "theirs",
	}))
	_, err := repos.Like.Toggle(user.ID, movie.ID)
	require.NoError(t, err)

	require.NoError(t, repos.User.Delete(user.ID))

	gone, err := repos.User.FindByID(user.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	comments, err := repos.Comment.ListByMovie(movie.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "theirs", comments[0].Text)

	likes, err := repos.Like.ListAll()
	require.NoError(t, err)
	assert.Empty(t, likes)
}

func TestUserDeleteRemovesReplyDescendants(t *testing.T) {
	repos := setupRepos(t)

	alice := seedUser(t, repos, "alice@example.com")
	bob := seedUser(t, repos, "bob@example.com")
	genre := seedGenre(t, repos, "Drama")
	movie := seedMovie(t, repos, genre.Slug, "Parasite")

	root := &model.Comment{UserID: alice.ID, MovieID: movie.ID, Text: "alice root"}
	require.NoError(t, repos.Comment.Create(root))

	// 别人的回复也属于子树，随根评论一起删除
	reply := &model.Comment{UserID: bob.ID, MovieID: movie.ID, ParentID: &root.ID, Text: "bob reply"}
	require.NoError(t, repos.Comment.Create(reply))

	nested := &model.Comment{UserID: alice.ID, MovieID: movie.ID, ParentID: &reply.ID, Text: "alice again"}
	require.NoError(t, repos.Comment.Create(nested))

	standalone := &model.Comment{UserID: bob.ID, MovieID: movie.ID, Text: "bob root"}
	require.NoError(t, repos.Comment.Create(standalone))

	require.NoError(t, repos.User.Delete(alice.ID))

	remaining, err := repos.Comment.ListByMovie(movie.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "bob root", remaining[0].Text)

	// 留下的评论不再引用已删除的父节点
	for _, c := range remaining {
		if c.ParentID != nil {
			parent, err := repos.Comment.FindByID(*c.ParentID)
			require.NoError(t, err)
			assert.NotNil(t, parent)
		}
	}
}

func TestListRecommendedExcludesSelf(t *testing.T) {
	repos := setupRepos(t)

	genre := seedGenre(t, repos, "Drama")
	target := seedMovie(t, repos, genre.Slug, "Parasite")
	seedMovie(t, repos, genre.Slug, "Oldboy")
	seedMovie(t, repos, genre.Slug, "Burning")

	recommended, err := repos.Movie.ListRecommended(genre.Slug, target.ID)
	require.NoError(t, err)
	require.Len(t, recommended, 2)
	for _, m := range recommended {
		assert.NotEqual(t, target.ID, m.ID)
	}
}
