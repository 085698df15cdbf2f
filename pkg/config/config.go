package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	App struct {
		Name string `yaml:"name"`
		Env  string `yaml:"env"`
	} `yaml:"app"`

	Providers struct {
		// Sina 免费行情源
		SinaBaseURL string `yaml:"sina_base_url"`
		// 通用第三方行情覆盖源，空表示未配置
		ThirdPartyBaseURL string `yaml:"third_party_base_url"`
		// 涨跌停信息源地址，空表示未配置（也可复用第三方覆盖源地址）
		InstrumentBaseURL string `yaml:"instrument_base_url"`
		// 股池/实时/简介各接口基础地址
		ZTGCBaseURL       string `yaml:"ztgc_base_url"`
		DTGCBaseURL       string `yaml:"dtgc_base_url"`
		ZBGCBaseURL       string `yaml:"zbgc_base_url"`
		QSGCBaseURL       string `yaml:"qsgc_base_url"`
		SSJYBaseURL       string `yaml:"ssjy_base_url"`
		RealtimeBaseURL   string `yaml:"realtime_base_url"`
		SSJYMoreBaseURL   string `yaml:"ssjy_more_base_url"`
		ProfileBaseURL    string `yaml:"profile_base_url"`
		// AKShare aktools边车地址，空表示不启用
		AkshareBaseURL string `yaml:"akshare_base_url"`
		// 共享第三方licence
		APIKey string `yaml:"api_key"`
	} `yaml:"providers"`

	HTTP struct {
		CacheTTL     time.Duration `yaml:"cache_ttl"`
		RateLimitQPS float64       `yaml:"rate_limit_qps"`
	} `yaml:"http"`

	API struct {
		Port string `yaml:"port"`
	} `yaml:"api"`

	NATS struct {
		URL string `yaml:"url"`
	} `yaml:"nats"`

	Snapshot struct {
		Path     string `yaml:"path"`
		CronSpec string `yaml:"cron_spec"`
	} `yaml:"snapshot"`
}

// Default 各数据源的出厂默认地址
func Default() *Config {
	var c Config
	c.App.Name = "laicai-stock"
	c.App.Env = "dev"
	c.Providers.SinaBaseURL = "https://hq.sinajs.cn"
	c.Providers.ZTGCBaseURL = "https://api.biyingapi.com/hslt/ztgc"
	c.Providers.DTGCBaseURL = "http://api.biyingapi.com/hslt/dtgc"
	c.Providers.ZBGCBaseURL = "http://api.biyingapi.com/hslt/zbgc"
	c.Providers.QSGCBaseURL = "https://api.biyingapi.com/hslt/qsgc"
	c.Providers.SSJYBaseURL = "http://api.biyingapi.com/hsrl/ssjy"
	c.Providers.RealtimeBaseURL = "https://api.biyingapi.com/hsstock/real/time"
	c.Providers.SSJYMoreBaseURL = "http://api.biyingapi.com/hsrl/ssjy_more"
	c.Providers.ProfileBaseURL = "https://api.biyingapi.com/hscp/gsjj"
	c.HTTP.CacheTTL = 30 * time.Second
	c.HTTP.RateLimitQPS = 10
	c.API.Port = "8000"
	c.Snapshot.Path = "data/pool_snapshot.json"
	c.Snapshot.CronSpec = "0 10 15 * * 1-5"
	return &c
}

// Load 从文件加载配置。文件不存在时使用默认值，环境变量始终可覆盖。
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("读取配置文件失败: %w", err)
			}
		} else if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}
	overrideFromEnv(c)
	return c, nil
}

// overrideFromEnv 使用环境变量覆盖配置
func overrideFromEnv(c *Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.App.Name, "APP_NAME")
	set(&c.App.Env, "APP_ENV")
	set(&c.Providers.SinaBaseURL, "SINA_FINANCE_BASE_URL")
	set(&c.Providers.ThirdPartyBaseURL, "THIRD_PARTY_BASE_URL")
	set(&c.Providers.InstrumentBaseURL, "THIRD_PARTY_INSTRUMENT_BASE_URL")
	set(&c.Providers.ZTGCBaseURL, "THIRD_PARTY_ZTGC_BASE_URL")
	set(&c.Providers.DTGCBaseURL, "THIRD_PARTY_DTGC_BASE_URL")
	set(&c.Providers.ZBGCBaseURL, "THIRD_PARTY_ZBGC_BASE_URL")
	set(&c.Providers.QSGCBaseURL, "THIRD_PARTY_QSGC_BASE_URL")
	set(&c.Providers.SSJYBaseURL, "THIRD_PARTY_SSJY_BASE_URL")
	set(&c.Providers.RealtimeBaseURL, "THIRD_PARTY_REALTIME_BASE_URL")
	set(&c.Providers.SSJYMoreBaseURL, "THIRD_PARTY_SSJY_MORE_BASE_URL")
	set(&c.Providers.ProfileBaseURL, "THIRD_PARTY_PROFILE_BASE_URL")
	set(&c.Providers.AkshareBaseURL, "AKSHARE_BASE_URL")
	set(&c.Providers.APIKey, "THIRD_PARTY_API_KEY")
	set(&c.API.Port, "PORT")
	set(&c.NATS.URL, "NATS_URL")
	set(&c.Snapshot.Path, "SNAPSHOT_PATH")
	set(&c.Snapshot.CronSpec, "SNAPSHOT_CRON")

	if v := os.Getenv("HTTP_CACHE_TTL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.HTTP.CacheTTL = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_QPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.HTTP.RateLimitQPS = f
		}
	}
}
