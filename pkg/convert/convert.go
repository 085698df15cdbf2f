package convert

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloat 宽容地把上游字符串解析为浮点数。
// 去除首尾空白、千位分隔逗号和结尾百分号后尝试解析；
// 第二个返回值表示是否真正解析成功，false 时返回值为 0，
// 调用方可以据此区分"真实的0"和"解析失败兜底的0"。
func ParseFloat(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ToFloat 同 ParseFloat，但失败时静默返回 0（上游容错策略，不报错）
func ToFloat(raw string) float64 {
	v, _ := ParseFloat(raw)
	return v
}

// ToInt 解析整数字段，识别中英文布尔标记：
// 是/Y/y/true/True/1 → 1，否/N/n/false/False/0 → 0，
// 其余尝试按浮点解析后截断，失败返回 0。
func ToInt(raw string) int {
	switch strings.TrimSpace(raw) {
	case "是", "Y", "y", "true", "True", "1":
		return 1
	case "否", "N", "n", "false", "False", "0", "":
		return 0
	}
	v, ok := ParseFloat(raw)
	if !ok {
		return 0
	}
	return int(v)
}

// RoundMoney 价格/金额统一保留2位小数的定点舍入。
// 只在出口整形处调用一次，中间计算不舍入，避免误差累积。
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatHHMMSS 把6位纯数字时间串（093015）格式化为 09:30:15；
// 长度或内容不符时原样返回。
func FormatHHMMSS(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) != 6 {
		return s
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return s
		}
	}
	return s[0:2] + ":" + s[2:4] + ":" + s[4:6]
}
