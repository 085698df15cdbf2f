package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFloat_TolerantCoercion(t *testing.T) {
	assert.Equal(t, 12.34, ToFloat("12.34%"))
	assert.Equal(t, 1234.5, ToFloat("1,234.5"))
	assert.Equal(t, 0.0, ToFloat(""))
	assert.Equal(t, 0.0, ToFloat("n/a"))
	assert.Equal(t, -9.97, ToFloat(" -9.97 "))
	assert.Equal(t, 0.0, ToFloat("--"))
}

func TestParseFloat_DistinguishesDefaultedZero(t *testing.T) {
	v, ok := ParseFloat("0")
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)

	// 垃圾输入同样得到0，但标记为未解析成功
	v, ok = ParseFloat("garbage")
	assert.False(t, ok)
	assert.Equal(t, 0.0, v)

	_, ok = ParseFloat("")
	assert.False(t, ok)
}

func TestToInt_BooleanTokens(t *testing.T) {
	for _, s := range []string{"是", "Y", "y", "true", "True", "1"} {
		assert.Equal(t, 1, ToInt(s), s)
	}
	for _, s := range []string{"否", "N", "n", "false", "False", "0", ""} {
		assert.Equal(t, 0, ToInt(s), s)
	}
	assert.Equal(t, 3, ToInt("3.9"))
	assert.Equal(t, 0, ToInt("abc"))
}

func TestRoundMoney_FixedPoint(t *testing.T) {
	assert.Equal(t, 10.46, RoundMoney(10.455))
	assert.Equal(t, 10.45, RoundMoney(10.454))
	assert.Equal(t, -3.17, RoundMoney(-3.165))
	assert.Equal(t, 0.0, RoundMoney(0))
	// 二进制浮点展示误差不应泄漏到结果
	assert.Equal(t, 0.3, RoundMoney(0.1+0.2))
}

func TestFormatHHMMSS(t *testing.T) {
	assert.Equal(t, "09:30:15", FormatHHMMSS("093015"))
	assert.Equal(t, "9:30", FormatHHMMSS("9:30"))
	assert.Equal(t, "", FormatHHMMSS(""))
	assert.Equal(t, "09301a", FormatHHMMSS("09301a"))
	assert.Equal(t, "15:00:00", FormatHHMMSS(" 150000 "))
}
