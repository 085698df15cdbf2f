package model

// Quote 股票行情数据
type Quote struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
	ChangeAmount  float64 `json:"change_amount"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	PrevClose     float64 `json:"prev_close"`
	Time          string  `json:"time"`
}

// LimitStatus 涨跌停状态数据
type LimitStatus struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	LimitUpPrice   float64 `json:"limit_up_price"`
	LimitDownPrice float64 `json:"limit_down_price"`
	IsLimitUp      bool    `json:"is_limit_up"`
	IsLimitDown    bool    `json:"is_limit_down"`
	LimitRate      float64 `json:"limit_rate"`
}

// LimitUpPoolItem 涨停股池条目
type LimitUpPoolItem struct {
	Code              string  `json:"code"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	ChangePercent     float64 `json:"change_percent"`
	Amount            float64 `json:"amount"`
	FloatMarketCap    float64 `json:"float_market_cap"`
	TotalMarketCap    float64 `json:"total_market_cap"`
	TurnoverRate      float64 `json:"turnover_rate"`
	ConsecutiveBoards int     `json:"consecutive_boards"`
	FirstBoardTime    string  `json:"first_board_time"`
	LastBoardTime     string  `json:"last_board_time"`
	SealFunds         float64 `json:"seal_funds"`
	BrokenBoards      int     `json:"broken_boards"`
	Stat              string  `json:"stat"`
}

// LimitDownPoolItem 跌停股池条目
type LimitDownPoolItem struct {
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	ChangePercent    float64 `json:"change_percent"`
	Amount           float64 `json:"amount"`
	FloatMarketCap   float64 `json:"float_market_cap"`
	TotalMarketCap   float64 `json:"total_market_cap"`
	PERatio          float64 `json:"pe_ratio"`
	TurnoverRate     float64 `json:"turnover_rate"`
	SealFunds        float64 `json:"seal_funds"`
	LastBoardTime    string  `json:"last_board_time"`
	BoardAmount      float64 `json:"board_amount"`
	ConsecutiveDowns int     `json:"consecutive_downs"`
	OpenedBoards     int     `json:"opened_boards"`
}

// BreakPoolItem 炸板股池条目
type BreakPoolItem struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	ChangePercent  float64 `json:"change_percent"`
	LimitUpPrice   float64 `json:"limit_up_price"`
	Amount         float64 `json:"amount"`
	FloatMarketCap float64 `json:"float_market_cap"`
	TotalMarketCap float64 `json:"total_market_cap"`
	TurnoverRate   float64 `json:"turnover_rate"`
	FirstBoardTime string  `json:"first_board_time"`
	BrokenBoards   int     `json:"broken_boards"`
	Stat           string  `json:"stat"`
}

// StrongPoolItem 强势股池条目
type StrongPoolItem struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	ChangePercent  float64 `json:"change_percent"`
	LimitUpPrice   float64 `json:"limit_up_price"`
	Amount         float64 `json:"amount"`
	FloatMarketCap float64 `json:"float_market_cap"`
	TotalMarketCap float64 `json:"total_market_cap"`
	TurnoverRate   float64 `json:"turnover_rate"`
	VolumeRatio    float64 `json:"volume_ratio"`
	RiseSpeed      float64 `json:"rise_speed"`
	IsNewHigh      int     `json:"is_new_high"`
	Stat           string  `json:"stat"`
	Reason         string  `json:"reason"`
	Industry       string  `json:"industry"`
}

// RealtimePublicItem 公开源实时交易条目
type RealtimePublicItem struct {
	FM    float64 `json:"fm"`
	H     float64 `json:"h"`
	HS    float64 `json:"hs"`
	LB    float64 `json:"lb"`
	L     float64 `json:"l"`
	LT    float64 `json:"lt"`
	O     float64 `json:"o"`
	PE    float64 `json:"pe"`
	PC    float64 `json:"pc"`
	P     float64 `json:"p"`
	SZ    float64 `json:"sz"`
	CJE   float64 `json:"cje"`
	UD    float64 `json:"ud"`
	V     float64 `json:"v"`
	YC    float64 `json:"yc"`
	ZF    float64 `json:"zf"`
	ZS    float64 `json:"zs"`
	SJL   float64 `json:"sjl"`
	ZDF60 float64 `json:"zdf60"`
	ZDFNC float64 `json:"zdfnc"`
	T     string  `json:"t"`
}

// RealtimeBrokerItem 券商源实时交易条目
type RealtimeBrokerItem struct {
	P       float64 `json:"p"`
	O       float64 `json:"o"`
	H       float64 `json:"h"`
	L       float64 `json:"l"`
	YC      float64 `json:"yc"`
	CJE     float64 `json:"cje"`
	V       float64 `json:"v"`
	PV      float64 `json:"pv"`
	T       string  `json:"t"`
	UD      float64 `json:"ud"`
	PC      float64 `json:"pc"`
	ZF      float64 `json:"zf"`
	PE      float64 `json:"pe"`
	TR      float64 `json:"tr"`
	PBRatio float64 `json:"pb_ratio"`
	TV      float64 `json:"tv"`
}

// RealtimeBatchItem 公开源批量实时交易条目，比单股多携带代码字段
type RealtimeBatchItem struct {
	DM string `json:"dm"`
	RealtimeBrokerItem
}

// CompanyProfile 上市公司简介。字段来自工商登记信息，
// 缺失字段保留空串，部分数据优于没有数据。
type CompanyProfile struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	EnglishName  string `json:"english_name"`
	Market       string `json:"market"`
	Concept      string `json:"concept"`
	ListDate     string `json:"list_date"`
	IssuePrice   string `json:"issue_price"`
	Principal    string `json:"principal"`
	RegisterDate string `json:"register_date"`
	Underwriter  string `json:"underwriter"`
	Phone        string `json:"phone"`
	Website      string `json:"website"`
	Address      string `json:"address"`
	Description  string `json:"description"`
}

// ErrorResponse 统一错误信封
type ErrorResponse struct {
	Error string `json:"error"`
}
