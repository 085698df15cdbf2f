package symbol

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zxl7/laicai/pkg/errs"
)

// Symbol 规范化后的股票代码，形如 sh600000 / sz000001
type Symbol string

var (
	rePrefixed = regexp.MustCompile(`^(sh|sz)(\d{6})$`)
	reSuffixed = regexp.MustCompile(`^(\d{6})\.(sh|sz)$`)
	reBare     = regexp.MustCompile(`^\d{6}$`)
)

// Normalize 将三种可接受的输入格式归一化为交易所前缀形式。
// 支持：600000、sh600000、600000.SH（大小写不敏感，首尾空白忽略）。
func Normalize(input string) (Symbol, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if m := reSuffixed.FindStringSubmatch(s); m != nil {
		return Symbol(m[2] + m[1]), nil
	}
	if rePrefixed.MatchString(s) {
		return Symbol(s), nil
	}
	if reBare.MatchString(s) {
		return Symbol(InferExchange(s) + s), nil
	}
	return "", fmt.Errorf("%w: %q", errs.ErrInvalidSymbol, input)
}

// InferExchange 按首位数字推断交易所：6/9开头归上海，其余归深圳。
// 这是启发式规则，对不遵循该惯例的代码（如部分北交所代码）会误判，
// 属已知限制，与上游原始行为保持一致。
func InferExchange(code string) string {
	if strings.HasPrefix(code, "6") || strings.HasPrefix(code, "9") {
		return "sh"
	}
	return "sz"
}

// Code 去掉交易所前缀后的6位代码
func (s Symbol) Code() string {
	return strings.TrimPrefix(strings.TrimPrefix(string(s), "sh"), "sz")
}

// Exchange 交易所前缀，sh 或 sz
func (s Symbol) Exchange() string {
	return string(s)[:2]
}

// ToInstrument 转换为第三方接口要求的 NNNNNN.SH / NNNNNN.SZ 形式。
// 与 Normalize 互为逆操作：Normalize(ToInstrument(sym)) == sym。
func ToInstrument(s Symbol) string {
	return s.Code() + "." + strings.ToUpper(s.Exchange())
}
