package snapshot

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/zxl7/laicai/pkg/resolve"
	"github.com/zxl7/laicai/pkg/upstream"
)

// Refresher 交易日收盘后定时刷新四种股池快照
type Refresher struct {
	cron     *cron.Cron
	resolver *resolve.Resolver
	spec     string
}

// NewRefresher 创建快照刷新任务，spec为6段cron表达式（含秒）
func NewRefresher(resolver *resolve.Resolver, spec string) *Refresher {
	return &Refresher{
		cron:     cron.New(cron.WithSeconds()),
		resolver: resolver,
		spec:     spec,
	}
}

// Start 启动调度器
func (r *Refresher) Start() error {
	if _, err := r.cron.AddFunc(r.spec, r.refreshAll); err != nil {
		return err
	}
	r.cron.Start()
	log.Printf("股池快照刷新任务已启动: %s", r.spec)
	return nil
}

// Stop 停止调度器
func (r *Refresher) Stop() {
	r.cron.Stop()
}

// refreshAll 逐个刷新四种股池。GetPool成功时会顺手写入快照，
// 这里只负责触发，单个失败不影响其余股池。
func (r *Refresher) refreshAll() {
	log.Println("刷新股池快照...")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, kind := range []upstream.PoolKind{
		upstream.PoolLimitUp,
		upstream.PoolLimitDown,
		upstream.PoolBreak,
		upstream.PoolStrong,
	} {
		if _, err := r.resolver.GetPool(ctx, kind, "", ""); err != nil {
			log.Printf("刷新股池 %s 失败: %v", kind, err)
		}
	}
}
