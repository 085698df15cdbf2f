package main

import (
	"flag"
	"log"

	"github.com/zxl7/laicai/pkg/api"
	"github.com/zxl7/laicai/pkg/config"
	"github.com/zxl7/laicai/pkg/fetch"
	"github.com/zxl7/laicai/pkg/messaging"
	"github.com/zxl7/laicai/pkg/resolve"
	"github.com/zxl7/laicai/pkg/snapshot"
	"github.com/zxl7/laicai/pkg/upstream"
)

func main() {
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	flag.Parse()

	log.Println("启动行情网关...")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 所有上游共用一个带缓存和限流的HTTP客户端
	client := fetch.NewClient(fetch.Options{
		CacheTTL: cfg.HTTP.CacheTTL,
		QPS:      cfg.HTTP.RateLimitQPS,
	})

	// 各上游数据源
	generic := upstream.NewGenericQuoteSource(client, cfg.Providers.ThirdPartyBaseURL, cfg.Providers.APIKey)
	sina := upstream.NewSinaQuoteSource(client, cfg.Providers.SinaBaseURL)
	akshare := upstream.NewAkshareSource(client, cfg.Providers.AkshareBaseURL)
	limitInfo := upstream.NewLimitInfoSource(client, cfg.Providers.InstrumentBaseURL, cfg.Providers.APIKey)
	pools := upstream.NewPoolClient(client, map[upstream.PoolKind]string{
		upstream.PoolLimitUp:   cfg.Providers.ZTGCBaseURL,
		upstream.PoolLimitDown: cfg.Providers.DTGCBaseURL,
		upstream.PoolBreak:     cfg.Providers.ZBGCBaseURL,
		upstream.PoolStrong:    cfg.Providers.QSGCBaseURL,
	})
	realtime := upstream.NewRealtimeClient(client,
		cfg.Providers.SSJYBaseURL,
		cfg.Providers.RealtimeBaseURL,
		cfg.Providers.SSJYMoreBaseURL,
	)
	profile := upstream.NewProfileSource(client, cfg.Providers.ProfileBaseURL)

	// 股池快照兜底
	store := snapshot.NewStore(cfg.Snapshot.Path)

	resolver := resolve.New(generic, sina, akshare, limitInfo, pools, realtime, profile, store, cfg.Providers.APIKey)

	// 收盘后定时刷新股池快照
	refresher := snapshot.NewRefresher(resolver, cfg.Snapshot.CronSpec)
	if err := refresher.Start(); err != nil {
		log.Fatalf("启动股池快照刷新任务失败: %v", err)
	}
	defer refresher.Stop()

	handlers := api.NewHandlers(resolver)

	// NATS可选，不配置时仅通过websocket推送
	if cfg.NATS.URL != "" {
		publisher, err := messaging.NewQuotePublisher(cfg.NATS.URL)
		if err != nil {
			log.Printf("NATS不可用，跳过行情发布: %v", err)
		} else {
			defer publisher.Close()
			handlers.SetPublisher(publisher)
		}
	}

	server := api.NewServer(cfg.API.Port)
	server.SetupRoutes(handlers)
	server.Start()
}
