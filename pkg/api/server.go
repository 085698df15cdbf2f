package api

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// Server API服务器
type Server struct {
	router *gin.Engine
	srv    *http.Server
}

// NewServer 创建新的API服务器
func NewServer(port string) *Server {
	router := gin.Default()

	// 设置中间件
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(RequestID())

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	return &Server{
		router: router,
		srv:    srv,
	}
}

// SetupRoutes 设置路由
func (s *Server) SetupRoutes(handlers *Handlers) {
	// 服务首页与健康检查
	s.router.GET("/", handlers.Index)
	s.router.GET("/health", handlers.HealthCheck)
	s.router.GET("/ready", handlers.ReadinessCheck)

	// 行情接口
	s.router.GET("/quote", handlers.GetQuote)
	s.router.GET("/akshare/quote", handlers.GetAkshareQuote)

	// 涨跌停状态
	s.router.GET("/limit-status", handlers.GetLimitStatus)
	s.router.GET("/hsstock/instrument/:instrument", handlers.GetInstrument)

	// 股池接口
	s.router.GET("/hslt/:kind", handlers.GetPool)

	// 实时数据接口
	s.router.GET("/hsrl/ssjy", handlers.GetRealtimePublic)
	s.router.GET("/hsrl/ssjy_more", handlers.GetRealtimeBatch)
	s.router.GET("/hsstock/real/time", handlers.GetRealtimeBroker)

	// 公司简介
	s.router.GET("/company-profile/:code", handlers.GetCompanyProfile)

	// websocket行情推送
	s.router.GET("/ws/quote", handlers.QuoteStream)
}

// Start 启动服务器并等待中断信号
func (s *Server) Start() {
	// 在goroutine中启动服务器
	go func() {
		log.Printf("API服务器启动在 %s\n", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务器失败: %v\n", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	// 设置超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 优雅关闭
	if err := s.srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务器关闭失败: %v\n", err)
	}

	log.Println("服务器已关闭")
}

// Router 暴露路由器，测试使用
func (s *Server) Router() *gin.Engine {
	return s.router
}
