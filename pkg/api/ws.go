package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/zxl7/laicai/pkg/messaging"
	"github.com/zxl7/laicai/pkg/model"
)

// 推送间隔，和HTTP轮询接口共用同一个行情链路
const pushInterval = time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 行情是公开只读数据，不限制来源
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SetPublisher 配置可选的NATS发布器，推送给客户端的行情同时转发一份
func (h *Handlers) SetPublisher(pub *messaging.QuotePublisher) {
	h.publisher = pub
}

// QuoteStream websocket行情推送，每秒一条。
// 任何一次获取失败发送一帧错误消息后关闭连接。
func (h *Handlers) QuoteStream(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		fail(c, errMissingSymbol)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket升级失败: %v", err)
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(pushInterval)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		quote, err := h.resolver.GetQuote(ctx, symbol)
		if err != nil {
			// 一帧错误消息然后断开，客户端据此决定是否重连
			_ = conn.WriteJSON(model.ErrorResponse{Error: err.Error()})
			return
		}

		if err := conn.WriteJSON(quote); err != nil {
			log.Printf("websocket写入失败，关闭连接: %v", err)
			return
		}
		h.publishQuote(ctx, quote)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (h *Handlers) publishQuote(ctx context.Context, quote *model.Quote) {
	if h.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.publisher.PublishQuote(pubCtx, quote); err != nil {
		// 发布失败不影响推送本身
		log.Printf("行情发布到NATS失败: %v", err)
	}
}
