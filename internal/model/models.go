package model

// Person 人物模型（来自 name.basics 数据集）
type Person struct {
	ID       int64   `json:"id" db:"id" gorm:"primaryKey"`
	Name     string  `json:"name" db:"name"`
	Birth    *int    `json:"birth,omitempty" db:"birth"`
	Death    *int    `json:"death,omitempty" db:"death"`
	KnownFor *string `json:"known_for,omitempty" db:"known_for"` // 逗号分隔的外部影片 ID（tt 前缀）
}

// Movie 影片模型（来自 title.basics 数据集）
type Movie struct {
	ID        int64   `json:"id" db:"id" gorm:"primaryKey"`
	Title     string  `json:"title" db:"title"`
	Year      *int    `json:"year,omitempty" db:"year"`
	TitleType *string `json:"title_type,omitempty" db:"title_type"`
	IsAdult   int     `json:"is_adult" db:"is_adult"`
	Runtime   *int    `json:"runtime,omitempty" db:"runtime"`
	Genres    *string `json:"genres,omitempty" db:"genres"` // 逗号分隔的类型标签
}

// Rating 影片评分（来自 title.ratings 数据集，随影片级联删除）
type Rating struct {
	MovieID  int64    `json:"movie_id" db:"movie_id"`
	Average  *float64 `json:"average,omitempty" db:"average"`
	NumVotes *int     `json:"num_votes,omitempty" db:"num_votes"`
}

// Star 出演边（来自 title.principals 数据集）
// (person_id, movie_id) 唯一，是共演图的邻接单元
type Star struct {
	PersonID int64  `json:"person_id" db:"person_id"`
	MovieID  int64  `json:"movie_id" db:"movie_id"`
	Category string `json:"category" db:"category"`
}

// ResolveStatus 人物解析结果状态
type ResolveStatus string

const (
	ResolveExact     ResolveStatus = "exact"
	ResolveAmbiguous ResolveStatus = "ambiguous"
	ResolveNotFound  ResolveStatus = "not_found"
)

// Candidate 供展示的候选人物（附已解析出的代表作片名）
type Candidate struct {
	Person
	KnownForTitles []string `json:"known_for_titles"`
}

// Resolution 人物解析结果
// Ambiguous 时 Matches 为全量命中（按 known_for 文本长度升序），
// Candidates 只保留能解析出代表作片名的人，仅用于展示；
// 未入选展示列表的人仍可通过精确 ID 或全名再次选中
type Resolution struct {
	Status     ResolveStatus `json:"status"`
	Person     *Person       `json:"person,omitempty"`
	Matches    []Person      `json:"matches,omitempty"`
	Candidates []Candidate   `json:"candidates,omitempty"`
}

// PathStep 路径上相邻两人的详细信息（含共演影片与角色语句）
type PathStep struct {
	Person1ID   int64    `json:"person_1_id"`
	Person1Name string   `json:"person_1_name"`
	Person1Role Role     `json:"person_1_role"`
	MovieID     int64    `json:"movie_id"`
	MovieTitle  string   `json:"movie_title"`
	MovieYear   *int     `json:"movie_year,omitempty"`
	MovieRating *float64 `json:"movie_rating,omitempty"`
	Person2ID   int64    `json:"person_2_id"`
	Person2Name string   `json:"person_2_name"`
	Person2Role Role     `json:"person_2_role"`
	Sentence    string   `json:"sentence"`
}
