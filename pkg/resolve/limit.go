package resolve

import "strings"

// LimitRate 静态涨跌停幅度表：ST前缀5%，创业板/科创板(300/301/688)20%，
// 其余主板10%。第三方未给出涨停价时用它本地推算。
func LimitRate(code, name string) float64 {
	n := strings.ToUpper(name)
	if strings.HasPrefix(n, "*ST") || strings.HasPrefix(n, "ST") {
		return 0.05
	}
	if strings.HasPrefix(code, "300") || strings.HasPrefix(code, "301") || strings.HasPrefix(code, "688") {
		return 0.20
	}
	return 0.10
}
