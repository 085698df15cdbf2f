// Package snapshot 股池数据的本地JSON快照。
// 每次成功的股池查询都会落盘，上游不可用时编排层用最近一次的
// 快照兜底返回。文件即存储，没有一致性或持久化承诺。
package snapshot

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/zxl7/laicai/pkg/upstream"
)

// Store 单文件快照存储，进程内用互斥锁串行化读写
type Store struct {
	path string

	mu   sync.Mutex
	data map[string]*upstream.PoolResult
}

// NewStore 打开快照存储，已有文件损坏时从空快照重新开始
func NewStore(path string) *Store {
	s := &Store{path: path, data: make(map[string]*upstream.PoolResult)}
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("读取快照文件失败: %v", err)
		}
		return s
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		log.Printf("快照文件损坏，忽略: %v", err)
		s.data = make(map[string]*upstream.PoolResult)
	}
	return s
}

// SavePool 更新一种股池的快照并落盘。落盘失败只记日志，
// 不影响在线请求。
func (s *Store) SavePool(kind string, result *upstream.PoolResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[kind] = result

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		log.Printf("序列化快照失败: %v", err)
		return
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("创建快照目录失败: %v", err)
			return
		}
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		log.Printf("写入快照文件失败: %v", err)
	}
}

// LoadPool 读取一种股池的最近快照
func (s *Store) LoadPool(kind string) (*upstream.PoolResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data[kind]
	return r, ok
}
