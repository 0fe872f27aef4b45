package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/sixdegrees/internal/model"
	"github.com/user/sixdegrees/internal/utils"
)

func newTestResolver(t *testing.T) (*ResolverService, *model.Person) {
	utils.InitCache()
	repos := newTestRepos(t)

	require.NoError(t, repos.Movie.BatchInsert([]model.Movie{
		{ID: 10, Title: "First Film"},
		{ID: 20, Title: "Second Film"},
		{ID: 30, Title: "Third Film"},
		{ID: 40, Title: "Fourth Film"},
		{ID: 50, Title: "Fifth Film"},
	}))

	// 三个人重名 "Chris Smith"：known_for 分别是 0、2、5 个片目
	longList := "tt0000010,tt0000020,tt0000030,tt0000040,tt0000050"
	shortList := "tt0000010,tt0000020"
	people := []model.Person{
		{ID: 1, Name: "Chris Smith"},
		{ID: 2, Name: "Chris Smith", KnownFor: &shortList},
		{ID: 3, Name: "Chris Smith", KnownFor: &longList},
		{ID: 4, Name: "Christopher Smithson"},
		{ID: 5, Name: "Alone Unique"},
	}
	require.NoError(t, repos.Person.BatchInsert(people))

	return NewResolverService(repos.Person, repos.Movie), &people[4]
}

func TestResolveByID(t *testing.T) {
	resolver, _ := newTestResolver(t)

	res, err := resolver.Resolve("2")
	require.NoError(t, err)
	assert.Equal(t, model.ResolveExact, res.Status)
	require.NotNil(t, res.Person)
	assert.Equal(t, int64(2), res.Person.ID)

	res, err = resolver.Resolve("999")
	require.NoError(t, err)
	assert.Equal(t, model.ResolveNotFound, res.Status)
}

func TestResolveByNameExact(t *testing.T) {
	resolver, unique := newTestResolver(t)

	res, err := resolver.Resolve("Alone Unique")
	require.NoError(t, err)
	assert.Equal(t, model.ResolveExact, res.Status)
	require.NotNil(t, res.Person)
	assert.Equal(t, unique.ID, res.Person.ID)
}

func TestResolveByNameNotFound(t *testing.T) {
	resolver, _ := newTestResolver(t)

	res, err := resolver.Resolve("Nonexistent Person")
	require.NoError(t, err)
	assert.Equal(t, model.ResolveNotFound, res.Status)
}

func TestResolveWholeTokenOnly(t *testing.T) {
	resolver, _ := newTestResolver(t)

	// "Chris" 是 "Chris Smith" 的独立词元，但不是 "Christopher" 的
	res, err := resolver.Resolve("Chris")
	require.NoError(t, err)
	assert.Equal(t, model.ResolveAmbiguous, res.Status)
	for _, match := range res.Matches {
		assert.NotEqual(t, int64(4), match.ID)
	}

	// "Smithson" 只整词命中一个人
	res, err = resolver.Resolve("Smithson")
	require.NoError(t, err)
	assert.Equal(t, model.ResolveExact, res.Status)
	require.NotNil(t, res.Person)
	assert.Equal(t, int64(4), res.Person.ID)
}

func TestResolveAmbiguousOrdering(t *testing.T) {
	resolver, _ := newTestResolver(t)

	res, err := resolver.Resolve("Chris Smith")
	require.NoError(t, err)
	assert.Equal(t, model.ResolveAmbiguous, res.Status)

	// 全量命中包含没有 known_for 的人
	require.Len(t, res.Matches, 3)
	assert.Equal(t, int64(2), res.Matches[0].ID) // known_for 较短的在前
	assert.Equal(t, int64(3), res.Matches[1].ID)
	assert.Equal(t, int64(1), res.Matches[2].ID) // 没有 known_for 的排最后

	// 展示列表过滤掉解析不出代表作的人，但此人仍在全量命中里
	require.Len(t, res.Candidates, 2)
	assert.Equal(t, int64(2), res.Candidates[0].ID)
	assert.Equal(t, int64(3), res.Candidates[1].ID)
	assert.Len(t, res.Candidates[0].KnownForTitles, 2)
	assert.Len(t, res.Candidates[1].KnownForTitles, 5)
}

func TestResolveEmptyInput(t *testing.T) {
	resolver, _ := newTestResolver(t)

	res, err := resolver.Resolve("   ")
	require.NoError(t, err)
	assert.Equal(t, model.ResolveNotFound, res.Status)
}

func TestKnownForTitlesSkipsCleanedMovies(t *testing.T) {
	resolver, _ := newTestResolver(t)

	// 指向的影片已被清洗掉：解析不出片名，返回空而不是报错
	gone := "tt0099999"
	titles := resolver.KnownForTitles(&gone)
	assert.Empty(t, titles)

	assert.Nil(t, resolver.KnownForTitles(nil))
}
