package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/sixdegrees/internal/model"
)

// 固定拓扑：A(1)-M1-B(2)，B-M2-C(3)，A 与 C 没有直接共演
func seedChain(t *testing.T) *PathService {
	repos := newTestRepos(t)
	seedGraph(t, repos,
		[]model.Person{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}},
		[]model.Movie{{ID: 10, Title: "M1"}, {ID: 20, Title: "M2"}},
		[][2]int64{{1, 10}, {2, 10}, {2, 20}, {3, 20}},
	)
	return NewPathService(repos.Star, 1000, 100)
}

func TestFindPathTwoHops(t *testing.T) {
	paths := seedChain(t)

	path, err := paths.FindPath(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, path)
}

func TestFindPathOneHop(t *testing.T) {
	paths := seedChain(t)

	path, err := paths.FindPath(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, path)
}

func TestFindPathSamePerson(t *testing.T) {
	paths := seedChain(t)

	path, err := paths.FindPath(2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, path)
}

func TestFindPathDisconnected(t *testing.T) {
	repos := newTestRepos(t)
	// 两个互不连通的分量：{1,2,3} 与 {4,5}
	seedGraph(t, repos,
		[]model.Person{
			{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"},
			{ID: 4, Name: "D"}, {ID: 5, Name: "E"},
		},
		[]model.Movie{{ID: 10, Title: "M1"}, {ID: 20, Title: "M2"}, {ID: 30, Title: "M3"}},
		[][2]int64{{1, 10}, {2, 10}, {2, 20}, {3, 20}, {4, 30}, {5, 30}},
	)

	// 上限足够时：队列耗尽，结论是"没有路径"
	paths := NewPathService(repos.Star, 1000, 100)
	_, err := paths.FindPath(1, 4)
	assert.ErrorIs(t, err, ErrNoPath)

	// 上限低于可达分量节点数时：同一查询触发熔断而不是"没有路径"
	capped := NewPathService(repos.Star, 2, 100)
	_, err = capped.FindPath(1, 4)
	assert.ErrorIs(t, err, ErrSearchAborted)
}

func TestFindPathShortestWins(t *testing.T) {
	repos := newTestRepos(t)
	// 1 与 4 之间既有 1-2-4 也有 1-2-3-4 … 共演 M4 提供直连捷径
	seedGraph(t, repos,
		[]model.Person{
			{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}, {ID: 4, Name: "D"},
		},
		[]model.Movie{
			{ID: 10, Title: "M1"}, {ID: 20, Title: "M2"},
			{ID: 30, Title: "M3"}, {ID: 40, Title: "M4"},
		},
		[][2]int64{
			{1, 10}, {2, 10},
			{2, 20}, {3, 20},
			{3, 30}, {4, 30},
			{1, 40}, {4, 40},
		},
	)
	paths := NewPathService(repos.Star, 1000, 100)

	path, err := paths.FindPath(1, 4)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 4}, path)
}

func TestHydrate(t *testing.T) {
	repos := newTestRepos(t)
	require.NoError(t, repos.Person.BatchInsert([]model.Person{
		{ID: 1, Name: "Al Pacino"}, {ID: 2, Name: "Diane Keaton"},
	}))
	require.NoError(t, repos.Movie.BatchInsert([]model.Movie{
		{ID: 10, Title: "The Godfather", Year: intPtr(1972)},
	}))
	average := 9.2
	require.NoError(t, repos.Rating.BatchInsert([]model.Rating{
		{MovieID: 10, Average: &average, NumVotes: intPtr(2000000)},
	}))
	require.NoError(t, repos.Star.BatchInsert([]model.Star{
		{PersonID: 1, MovieID: 10, Category: "actor"},
		{PersonID: 2, MovieID: 10, Category: "actress"},
	}))

	hydrator := NewHydrateService(repos.Star)
	steps, err := hydrator.Hydrate([]int64{1, 2})
	require.NoError(t, err)
	require.Len(t, steps, 1)

	step := steps[0]
	assert.Equal(t, model.RoleActor, step.Person1Role)
	assert.Equal(t, model.RoleActress, step.Person2Role)
	assert.Equal(t, "Al Pacino was an actor in The Godfather (1972) where Diane Keaton was an actress.", step.Sentence)
}

func TestHydrateUnknownRole(t *testing.T) {
	repos := newTestRepos(t)
	require.NoError(t, repos.Person.BatchInsert([]model.Person{
		{ID: 1, Name: "A"}, {ID: 2, Name: "B"},
	}))
	require.NoError(t, repos.Movie.BatchInsert([]model.Movie{{ID: 10, Title: "M1"}}))
	require.NoError(t, repos.Rating.BatchInsert([]model.Rating{{MovieID: 10, NumVotes: intPtr(10)}}))
	require.NoError(t, repos.Star.BatchInsert([]model.Star{
		{PersonID: 1, MovieID: 10, Category: "casting_director"},
		{PersonID: 2, MovieID: 10, Category: "actor"},
	}))

	// 库里出现枚举之外的角色类别：数据漂移，显式报错
	hydrator := NewHydrateService(repos.Star)
	_, err := hydrator.Hydrate([]int64{1, 2})
	assert.Error(t, err)
}

func TestHydrateInvalidPath(t *testing.T) {
	repos := newTestRepos(t)
	require.NoError(t, repos.Person.BatchInsert([]model.Person{
		{ID: 1, Name: "A"}, {ID: 2, Name: "B"},
	}))

	hydrator := NewHydrateService(repos.Star)
	_, err := hydrator.Hydrate([]int64{1, 2})
	assert.Error(t, err)
}
