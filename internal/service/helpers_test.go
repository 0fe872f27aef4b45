package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/user/sixdegrees/internal/config"
	"github.com/user/sixdegrees/internal/model"
	"github.com/user/sixdegrees/internal/repository"
	"github.com/user/sixdegrees/internal/testutil"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func newTestRepos(t *testing.T) *repository.Repositories {
	repos := repository.NewRepositories(testutil.OpenDB(t))
	require.NoError(t, repos.Schema.Reset())
	return repos
}

func testConfig(dataDir string) *config.Config {
	return &config.Config{
		Env:           "test",
		DatabaseURL:   "test",
		Port:          "0",
		DataDir:       dataDir,
		BatchSize:     2,
		MinVotes:      2,
		MaxSkipRatio:  0.5,
		MaxNodes:      1000,
		ContactsCache: 100,
		ImageDir:      dataDir,
	}
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// seedGraph 直接写入一个小型共演图：
// edges 里每个元素是 (人物ID, 影片ID)
func seedGraph(t *testing.T, repos *repository.Repositories, people []model.Person, movies []model.Movie, edges [][2]int64) {
	t.Helper()
	require.NoError(t, repos.Person.BatchInsert(people))
	require.NoError(t, repos.Movie.BatchInsert(movies))
	stars := make([]model.Star, 0, len(edges))
	for _, edge := range edges {
		stars = append(stars, model.Star{PersonID: edge[0], MovieID: edge[1], Category: "actor"})
	}
	require.NoError(t, repos.Star.BatchInsert(stars))
}
