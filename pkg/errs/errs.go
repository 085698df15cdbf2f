package errs

import "errors"

// 错误分类哨兵。各适配器用 fmt.Errorf("...: %w", 哨兵) 包装具体信息，
// API 层通过 errors.Is 归类后统一返回 {"error": ...} 信封。
var (
	// ErrInvalidSymbol 股票代码不符合三种可接受格式
	ErrInvalidSymbol = errors.New("symbol格式不正确")

	// ErrMissingCredential 缺少必需的第三方licence
	ErrMissingCredential = errors.New("缺少第三方licence(THIRD_PARTY_API_KEY)")

	// ErrUpstreamUnavailable 上游接口重试耗尽或终态非2xx
	ErrUpstreamUnavailable = errors.New("上游接口不可用")

	// ErrMalformedResponse 上游返回2xx但结构不符合约定
	ErrMalformedResponse = errors.New("上游返回格式错误")
)
