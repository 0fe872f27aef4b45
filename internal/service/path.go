package service

import (
	"errors"
	"time"

	"github.com/user/sixdegrees/internal/repository"
	"github.com/user/sixdegrees/internal/utils"
)

var (
	// ErrNoPath 队列耗尽仍未找到目标，两人不连通
	ErrNoPath = errors.New("两人之间不存在任何连接")
	// ErrSearchAborted 出队节点数超过上限，搜索被熔断（结论性不同于 ErrNoPath）
	ErrSearchAborted = errors.New("搜索节点数超过上限，已中止")
)

// PathService 共演图最短路径搜索
// 图从不物化：节点是人物 ID，邻接集合按需由一条 JOIN 查询计算，
// 并经过定容 LRU 缓存，搜索期间反复触达的热点节点不重复查库
type PathService struct {
	stars    *repository.StarRepository
	maxNodes int
	contacts *utils.LRUCache[[]int64]
}

// NewPathService 创建路径搜索服务
func NewPathService(stars *repository.StarRepository, maxNodes, cacheSize int) *PathService {
	return &PathService{
		stars:    stars,
		maxNodes: maxNodes,
		contacts: utils.NewLRUCache[[]int64](cacheSize, 10*time.Minute),
	}
}

// queueEntry 工作队列条目，path 按倒序携带已走过的节点
type queueEntry struct {
	node int64
	path []int64
}

// FindPath 广度优先搜索两人之间的最短路径
// 返回从起点到终点的完整 ID 序列；距离 k 的节点都先于距离 k+1 出队，
// 所以第一条完成的路径跳数最少
func (s *PathService) FindPath(start, target int64) ([]int64, error) {
	if start == target {
		return []int64{start}, nil
	}

	queue := []queueEntry{{node: start}}
	visited := make(map[int64]struct{})
	dequeued := 0

	for len(queue) > 0 {
		dequeued++
		if dequeued > s.maxNodes {
			return nil, ErrSearchAborted
		}

		entry := queue[0]
		queue = queue[1:]

		// 同一节点可能经多个前驱重复入队，首次出队必然走的是最短路径，后续直接丢弃
		if _, ok := visited[entry.node]; ok {
			continue
		}
		visited[entry.node] = struct{}{}

		contacts, err := s.contactsOf(entry.node)
		if err != nil {
			return nil, err
		}

		for _, contact := range contacts {
			if contact == target {
				reversed := append([]int64{target, entry.node}, entry.path...)
				path := make([]int64, len(reversed))
				for i, id := range reversed {
					path[len(reversed)-1-i] = id
				}
				return path, nil
			}
		}

		for _, contact := range contacts {
			if _, ok := visited[contact]; !ok {
				next := make([]int64, 0, len(entry.path)+1)
				next = append(next, entry.node)
				next = append(next, entry.path...)
				queue = append(queue, queueEntry{node: contact, path: next})
			}
		}
	}

	return nil, ErrNoPath
}

// contactsOf 读取某人的邻接集合，优先走缓存
func (s *PathService) contactsOf(personID int64) ([]int64, error) {
	if cached, ok := s.contacts.Get(personID); ok {
		return cached, nil
	}
	contacts, err := s.stars.Contacts(personID)
	if err != nil {
		return nil, err
	}
	s.contacts.Set(personID, contacts)
	return contacts, nil
}
