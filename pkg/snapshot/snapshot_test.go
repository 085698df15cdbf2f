package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zxl7/laicai/pkg/model"
	"github.com/zxl7/laicai/pkg/upstream"
)

func TestStore_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools.json")

	s := NewStore(path)
	_, ok := s.LoadPool("ztgc")
	assert.False(t, ok)

	s.SavePool("ztgc", &upstream.PoolResult{
		LimitUp: []model.LimitUpPoolItem{{Code: "600519", Name: "贵州茅台", Price: 1888.0}},
	})

	// 新实例从同一文件恢复
	s2 := NewStore(path)
	result, ok := s2.LoadPool("ztgc")
	require.True(t, ok)
	require.Len(t, result.LimitUp, 1)
	assert.Equal(t, "600519", result.LimitUp[0].Code)
}

func TestStore_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	s := NewStore(path)
	_, ok := s.LoadPool("ztgc")
	assert.False(t, ok)
}

func TestStore_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "pools.json")

	s := NewStore(path)
	s.SavePool("dtgc", &upstream.PoolResult{LimitDown: []model.LimitDownPoolItem{{Code: "600000"}}})

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
