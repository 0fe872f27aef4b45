package model

import (
	"encoding/json"
	"fmt"
)

// Role 出演角色类别
// 数据集中的 category 是封闭集合，未知值视为数据漂移而不是静默失败
type Role int

const (
	RoleSelf Role = iota
	RoleActor
	RoleActress
	RoleDirector
	RoleProducer
	RoleWriter
	RoleEditor
	RoleComposer
	RoleCinematographer
	RoleProductionDesigner
	RoleArchiveFootage
	RoleArchiveSound
	roleCount
)

// roleNames 与 rolePhrases 按角色常量定长索引，
// 新增角色而漏填任一表会在编译期报错
var roleNames = [roleCount]string{
	RoleSelf:               "self",
	RoleActor:              "actor",
	RoleActress:            "actress",
	RoleDirector:           "director",
	RoleProducer:           "producer",
	RoleWriter:             "writer",
	RoleEditor:             "editor",
	RoleComposer:           "composer",
	RoleCinematographer:    "cinematographer",
	RoleProductionDesigner: "production_designer",
	RoleArchiveFootage:     "archive_footage",
	RoleArchiveSound:       "archive_sound",
}

var rolePhrases = [roleCount]string{
	RoleSelf:               "were themselves",
	RoleActor:              "was an actor",
	RoleActress:            "was an actress",
	RoleDirector:           "was a director",
	RoleProducer:           "was a producer",
	RoleWriter:             "was a writer",
	RoleEditor:             "was an editor",
	RoleComposer:           "was a composer",
	RoleCinematographer:    "was a cinematographer",
	RoleProductionDesigner: "was a production designer",
	RoleArchiveFootage:     "was present in archive footage",
	RoleArchiveSound:       "was in archive sound",
}

// ParseRole 解析数据集中的角色类别
func ParseRole(category string) (Role, error) {
	for r := Role(0); r < roleCount; r++ {
		if roleNames[r] == category {
			return r, nil
		}
	}
	return 0, fmt.Errorf("未知的角色类别: %q", category)
}

// String 返回数据集中的原始类别名
func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

// Phrase 返回用于生成描述语句的谓语片段
func (r Role) Phrase() string {
	if r < 0 || r >= roleCount {
		return "appeared"
	}
	return rolePhrases[r]
}

// MarshalJSON 以类别名输出
func (r Role) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// UnmarshalJSON 从类别名还原
func (r *Role) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	role, err := ParseRole(name)
	if err != nil {
		return err
	}
	*r = role
	return nil
}
