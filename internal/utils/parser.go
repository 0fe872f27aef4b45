package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// NullSentinel 数据集中表示字段缺失的保留记号
const NullSentinel = `\N`

// ParseExternalID 解析外部标识符（两位字母前缀 + 补零十进制数）
// 去掉前缀后必须是纯数字，否则视为格式假设被破坏，直接报错
func ParseExternalID(raw, prefix string) (int64, error) {
	if !strings.HasPrefix(raw, prefix) || len(raw) <= len(prefix) {
		return 0, fmt.Errorf("非法的外部标识符 %q（期望前缀 %q）", raw, prefix)
	}
	id, err := strconv.ParseInt(raw[len(prefix):], 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("非法的外部标识符 %q: 前缀后不是十进制数字", raw)
	}
	return id, nil
}

// NullableInt 解析可空整数字段
// 哨兵值返回 nil；既不是哨兵也不是数字说明数据损坏，报错而不是吞掉
func NullableInt(raw string) (*int, error) {
	if raw == NullSentinel {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("非法的整数字段 %q", raw)
	}
	return &v, nil
}

// NullableFloat 解析可空小数字段
func NullableFloat(raw string) (*float64, error) {
	if raw == NullSentinel {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("非法的小数字段 %q", raw)
	}
	return &v, nil
}

// NullableText 解析可空文本字段
func NullableText(raw string) *string {
	if raw == NullSentinel {
		return nil
	}
	return &raw
}

// SplitExternalIDs 解析逗号分隔的外部标识符列表（如 known_for 字段）
func SplitExternalIDs(raw, prefix string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := ParseExternalID(strings.TrimSpace(part), prefix)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// FormatExternalID 还原外部标识符（补零到七位，用于对接 TMDB 查询）
func FormatExternalID(id int64, prefix string) string {
	return fmt.Sprintf("%s%07d", prefix, id)
}
