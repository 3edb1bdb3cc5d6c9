package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/wfunc/wager-engine/internal/api"
	"github.com/wfunc/wager-engine/internal/config"
	"github.com/wfunc/wager-engine/internal/database"
	"github.com/wfunc/wager-engine/internal/logger"
	"github.com/wfunc/wager-engine/internal/service"
	"github.com/wfunc/wager-engine/internal/websocket"
	"go.uber.org/zap"
)

// 版本信息
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Server 服务器实例
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	hub      *websocket.Hub
	services *service.Services
	httpSrv  *http.Server

	// 关闭控制
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func main() {
	// 命令行参数
	var (
		configPath  = flag.String("config", "", "配置文件路径")
		showVersion = flag.Bool("version", false, "显示版本信息")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("wager-engine %s (build: %s, commit: %s)\n", Version, BuildTime, GitCommit)
		os.Exit(0)
	}

	// 加载配置
	if err := config.Init(*configPath); err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Get()

	// 初始化日志系统
	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Printf("初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Cleanup()

	logger.Info("启动引擎",
		zap.String("version", Version),
		zap.String("mode", cfg.Server.Mode))

	// 创建服务器实例
	server, err := NewServer(cfg)
	if err != nil {
		logger.Fatal("服务器初始化失败", zap.Error(err))
	}

	// 启动服务器
	if err := server.Start(); err != nil {
		logger.Fatal("服务器启动失败", zap.Error(err))
	}

	// 等待退出信号
	server.WaitForShutdown()

	// 优雅关闭
	if err := server.Shutdown(); err != nil {
		logger.Error("服务器关闭失败", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("服务器已安全关闭")
}

// NewServer 创建服务器实例
func NewServer(cfg *config.Config) (*Server, error) {
	ctx, cancel := context.WithCancel(context.Background())

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		cancel()
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(); err != nil {
			cancel()
			return nil, err
		}
		if err := database.SeedGames(&cfg.Game); err != nil {
			cancel()
			return nil, err
		}
	}

	// 结算事件推送
	hub := websocket.NewHub(logger.GetLogger())

	var emitter service.EventEmitter
	if cfg.Event.Enabled {
		emitter = hub
	}

	// 业务服务
	services := service.NewServices(database.GetDB(), service.DefaultConfig(), emitter, logger.GetLogger())

	// HTTP路由
	router := api.NewRouter(database.GetDB(), services, hub, logger.GetLogger())

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		cfg:      cfg,
		logger:   logger.GetLogger(),
		hub:      hub,
		services: services,
		httpSrv:  httpSrv,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start 启动服务器
func (s *Server) Start() error {
	// 事件推送中心
	go s.hub.Run()

	// 超时会话对账扫描
	s.wg.Add(1)
	go s.runPendingSweep()

	// HTTP服务
	go func() {
		s.logger.Info("HTTP服务监听", zap.String("addr", s.httpSrv.Addr))
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("HTTP服务异常退出", zap.Error(err))
		}
	}()

	// 监听配置热更新
	config.Watch(func(newCfg *config.Config) {
		s.logger.Info("配置已重载")
	})

	return nil
}

// runPendingSweep 周期扫描超时未结算的会话
func (s *Server) runPendingSweep() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.services.Bet.SweepPending(s.ctx, 30*time.Minute); err != nil {
				s.logger.Error("对账扫描失败", zap.Error(err))
			}
		}
	}
}

// WaitForShutdown 等待退出信号
func (s *Server) WaitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.logger.Info("收到退出信号")
}

// Shutdown 优雅关闭
func (s *Server) Shutdown() error {
	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpSrv.Shutdown(ctx); err != nil {
		return err
	}

	s.wg.Wait()

	return database.Close()
}
