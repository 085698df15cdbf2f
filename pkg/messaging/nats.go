// Package messaging 行情推送的JetStream出口。
// 未配置NATS时网关完全不依赖它，推流端点只走websocket。
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/zxl7/laicai/pkg/model"
)

// QuotePublisher 把推送给客户端的行情同时发布到 quotes.<code> 主题
type QuotePublisher struct {
	conn *nats.Conn
	js   jetstream.JetStream
}

// NewQuotePublisher 连接NATS并确保QUOTES流存在
func NewQuotePublisher(natsURL string) (*QuotePublisher, error) {
	nc, err := nats.Connect(natsURL,
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("NATS连接断开: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Println("NATS重新连接成功")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("连接NATS失败: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("创建JetStream失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        "QUOTES",
		Subjects:    []string{"quotes.*"},
		Description: "股票行情数据流",
		Retention:   jetstream.LimitsPolicy,
		MaxMsgs:     100000,
		MaxBytes:    100 * 1024 * 1024,
		MaxAge:      24 * time.Hour,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("创建QUOTES流失败: %w", err)
	}

	return &QuotePublisher{conn: nc, js: js}, nil
}

// PublishQuote 发布一条行情
func (p *QuotePublisher) PublishQuote(ctx context.Context, q *model.Quote) error {
	payload, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("序列化行情失败: %w", err)
	}
	if _, err := p.js.Publish(ctx, "quotes."+q.Code, payload); err != nil {
		return fmt.Errorf("发布行情到 quotes.%s 失败: %w", q.Code, err)
	}
	return nil
}

// Close 关闭连接
func (p *QuotePublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
