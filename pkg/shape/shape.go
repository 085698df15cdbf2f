// Package shape 出口整形：所有价格/金额字段在这里统一做2位定点舍入，
// 时间串在这里统一格式化。适配器交出的是未舍入的原始数值，
// 中间计算不舍入，避免误差累积。整形之外不做任何业务逻辑。
package shape

import (
	"github.com/zxl7/laicai/pkg/convert"
	"github.com/zxl7/laicai/pkg/model"
)

// Quote 行情出口整形
func Quote(q model.Quote) model.Quote {
	q.Price = convert.RoundMoney(q.Price)
	q.ChangePercent = convert.RoundMoney(q.ChangePercent)
	q.ChangeAmount = convert.RoundMoney(q.ChangeAmount)
	q.Open = convert.RoundMoney(q.Open)
	q.High = convert.RoundMoney(q.High)
	q.Low = convert.RoundMoney(q.Low)
	q.PrevClose = convert.RoundMoney(q.PrevClose)
	return q
}

// LimitStatus 涨跌停状态出口整形
func LimitStatus(ls model.LimitStatus) model.LimitStatus {
	ls.Price = convert.RoundMoney(ls.Price)
	ls.LimitUpPrice = convert.RoundMoney(ls.LimitUpPrice)
	ls.LimitDownPrice = convert.RoundMoney(ls.LimitDownPrice)
	ls.LimitRate = convert.RoundMoney(ls.LimitRate)
	return ls
}

// LimitUpPool 涨停股池出口整形
func LimitUpPool(items []model.LimitUpPoolItem) []model.LimitUpPoolItem {
	for i, it := range items {
		it.Price = convert.RoundMoney(it.Price)
		it.ChangePercent = convert.RoundMoney(it.ChangePercent)
		it.Amount = convert.RoundMoney(it.Amount)
		it.FloatMarketCap = convert.RoundMoney(it.FloatMarketCap)
		it.TotalMarketCap = convert.RoundMoney(it.TotalMarketCap)
		it.TurnoverRate = convert.RoundMoney(it.TurnoverRate)
		it.SealFunds = convert.RoundMoney(it.SealFunds)
		it.FirstBoardTime = convert.FormatHHMMSS(it.FirstBoardTime)
		it.LastBoardTime = convert.FormatHHMMSS(it.LastBoardTime)
		items[i] = it
	}
	return items
}

// LimitDownPool 跌停股池出口整形
func LimitDownPool(items []model.LimitDownPoolItem) []model.LimitDownPoolItem {
	for i, it := range items {
		it.Price = convert.RoundMoney(it.Price)
		it.ChangePercent = convert.RoundMoney(it.ChangePercent)
		it.Amount = convert.RoundMoney(it.Amount)
		it.FloatMarketCap = convert.RoundMoney(it.FloatMarketCap)
		it.TotalMarketCap = convert.RoundMoney(it.TotalMarketCap)
		it.PERatio = convert.RoundMoney(it.PERatio)
		it.TurnoverRate = convert.RoundMoney(it.TurnoverRate)
		it.SealFunds = convert.RoundMoney(it.SealFunds)
		it.BoardAmount = convert.RoundMoney(it.BoardAmount)
		it.LastBoardTime = convert.FormatHHMMSS(it.LastBoardTime)
		items[i] = it
	}
	return items
}

// BreakPool 炸板股池出口整形
func BreakPool(items []model.BreakPoolItem) []model.BreakPoolItem {
	for i, it := range items {
		it.Price = convert.RoundMoney(it.Price)
		it.ChangePercent = convert.RoundMoney(it.ChangePercent)
		it.LimitUpPrice = convert.RoundMoney(it.LimitUpPrice)
		it.Amount = convert.RoundMoney(it.Amount)
		it.FloatMarketCap = convert.RoundMoney(it.FloatMarketCap)
		it.TotalMarketCap = convert.RoundMoney(it.TotalMarketCap)
		it.TurnoverRate = convert.RoundMoney(it.TurnoverRate)
		it.FirstBoardTime = convert.FormatHHMMSS(it.FirstBoardTime)
		items[i] = it
	}
	return items
}

// StrongPool 强势股池出口整形
func StrongPool(items []model.StrongPoolItem) []model.StrongPoolItem {
	for i, it := range items {
		it.Price = convert.RoundMoney(it.Price)
		it.ChangePercent = convert.RoundMoney(it.ChangePercent)
		it.LimitUpPrice = convert.RoundMoney(it.LimitUpPrice)
		it.Amount = convert.RoundMoney(it.Amount)
		it.FloatMarketCap = convert.RoundMoney(it.FloatMarketCap)
		it.TotalMarketCap = convert.RoundMoney(it.TotalMarketCap)
		it.TurnoverRate = convert.RoundMoney(it.TurnoverRate)
		it.VolumeRatio = convert.RoundMoney(it.VolumeRatio)
		it.RiseSpeed = convert.RoundMoney(it.RiseSpeed)
		items[i] = it
	}
	return items
}

// RealtimePublic 公开源实时条目出口整形
func RealtimePublic(items []model.RealtimePublicItem) []model.RealtimePublicItem {
	for i, it := range items {
		it.FM = convert.RoundMoney(it.FM)
		it.H = convert.RoundMoney(it.H)
		it.HS = convert.RoundMoney(it.HS)
		it.LB = convert.RoundMoney(it.LB)
		it.L = convert.RoundMoney(it.L)
		it.LT = convert.RoundMoney(it.LT)
		it.O = convert.RoundMoney(it.O)
		it.PE = convert.RoundMoney(it.PE)
		it.PC = convert.RoundMoney(it.PC)
		it.P = convert.RoundMoney(it.P)
		it.SZ = convert.RoundMoney(it.SZ)
		it.CJE = convert.RoundMoney(it.CJE)
		it.UD = convert.RoundMoney(it.UD)
		it.V = convert.RoundMoney(it.V)
		it.YC = convert.RoundMoney(it.YC)
		it.ZF = convert.RoundMoney(it.ZF)
		it.ZS = convert.RoundMoney(it.ZS)
		it.SJL = convert.RoundMoney(it.SJL)
		it.ZDF60 = convert.RoundMoney(it.ZDF60)
		it.ZDFNC = convert.RoundMoney(it.ZDFNC)
		items[i] = it
	}
	return items
}

func roundBroker(it model.RealtimeBrokerItem) model.RealtimeBrokerItem {
	it.P = convert.RoundMoney(it.P)
	it.O = convert.RoundMoney(it.O)
	it.H = convert.RoundMoney(it.H)
	it.L = convert.RoundMoney(it.L)
	it.YC = convert.RoundMoney(it.YC)
	it.CJE = convert.RoundMoney(it.CJE)
	it.V = convert.RoundMoney(it.V)
	it.PV = convert.RoundMoney(it.PV)
	it.UD = convert.RoundMoney(it.UD)
	it.PC = convert.RoundMoney(it.PC)
	it.ZF = convert.RoundMoney(it.ZF)
	it.PE = convert.RoundMoney(it.PE)
	it.TR = convert.RoundMoney(it.TR)
	it.PBRatio = convert.RoundMoney(it.PBRatio)
	it.TV = convert.RoundMoney(it.TV)
	return it
}

// RealtimeBroker 券商源实时条目出口整形
func RealtimeBroker(items []model.RealtimeBrokerItem) []model.RealtimeBrokerItem {
	for i, it := range items {
		items[i] = roundBroker(it)
	}
	return items
}

// RealtimeBatch 批量实时条目出口整形
func RealtimeBatch(items []model.RealtimeBatchItem) []model.RealtimeBatchItem {
	for i, it := range items {
		it.RealtimeBrokerItem = roundBroker(it.RealtimeBrokerItem)
		items[i] = it
	}
	return items
}
