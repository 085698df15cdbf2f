package upstream

import (
	"fmt"
	"strconv"

	"github.com/zxl7/laicai/pkg/convert"
)

// 上游JSON字段既可能是数字也可能是字符串（带百分号、千位逗号甚至中文布尔），
// 解码到 map[string]any 后用下面的取值函数做宽容转换。

func asFloat(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		return convert.ToFloat(t)
	default:
		return convert.ToFloat(fmt.Sprintf("%v", t))
	}
}

func asInt(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return int(t)
	case int:
		return t
	case string:
		return convert.ToInt(t)
	default:
		return convert.ToInt(fmt.Sprintf("%v", t))
	}
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
