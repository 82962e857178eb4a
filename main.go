package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dircache/dircache/internal/config"
	"github.com/dircache/dircache/internal/dircache"
	"github.com/dircache/dircache/internal/logging"
	"github.com/dircache/dircache/internal/server"
	"github.com/dircache/dircache/internal/version"
)

// cliOptions 汇总 CLI 标志解析后的结果，便于在测试中注入。
type cliOptions struct {
	configPath  string
	checkOnly   bool
	showVersion bool
}

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

func main() {
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(2)
	}
	os.Exit(run(opts))
}

// run 根据解析到的 CLI 选项执行业务流程，并返回退出码，方便测试。
func run(opts cliOptions) int {
	if opts.showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stdErr, "加载配置失败: %v\n", err)
		return 1
	}

	logger, err := logging.InitLogger(cfg.Global)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化日志失败: %v\n", err)
		return 1
	}

	if opts.checkOnly {
		fields := logging.BaseFields("check_config", opts.configPath)
		fields["roots"] = len(cfg.Roots)
		fields["cache_ttl"] = cfg.Global.CacheTTL.DurationValue().String()
		fields["result"] = "ok"
		logger.WithFields(fields).Info("配置校验通过")
		return 0
	}

	cache := dircache.New(dircache.Options{Logger: logger})
	guard := server.NewPathGuard(config.RootPaths(cfg.Roots))

	fields := logging.BaseFields("startup", opts.configPath)
	fields["roots"] = config.RootPaths(cfg.Roots)
	fields["listen_port"] = cfg.Global.ListenPort
	fields["cache_ttl"] = cfg.Global.CacheTTL.DurationValue().String()
	fields["version"] = version.Full()
	logger.WithFields(fields).Info("配置加载完成")

	stopSweeper := startEvictionSweeper(cfg.Global, cache)
	defer stopSweeper()

	if err := startHTTPServer(cfg, cache, guard, logger); err != nil {
		fmt.Fprintf(stdErr, "HTTP 服务启动失败: %v\n", err)
		return 1
	}
	return 0
}

// parseCLIFlags 解析 CLI 参数，并结合环境变量计算最终的配置路径。
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("dircache", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configFlag string
		checkOnly  bool
		showVer    bool
	)

	fs.StringVar(&configFlag, "config", "", "配置文件路径（默认 ./config.toml，可被 DIRCACHE_CONFIG 覆盖）")
	fs.BoolVar(&checkOnly, "check-config", false, "仅校验配置后退出")
	fs.BoolVar(&showVer, "version", false, "显示版本信息")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("解析参数失败: %w", err)
	}

	path := os.Getenv("DIRCACHE_CONFIG")
	if configFlag != "" {
		path = configFlag
	}
	if path == "" {
		path = "config.toml"
	}

	return cliOptions{
		configPath:  path,
		checkOnly:   checkOnly,
		showVersion: showVer,
	}, nil
}

// startEvictionSweeper 按配置周期淘汰过期快照；CacheTTL 为 0 时不启动，
// 返回的函数用于停止后台协程。
func startEvictionSweeper(cfg config.GlobalConfig, cache *dircache.Cache) func() {
	if !cfg.EvictionEnabled() {
		return func() {}
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.EvictInterval.DurationValue())
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cache.EvictStale(cfg.CacheTTL.DurationValue())
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}

func startHTTPServer(cfg *config.Config, cache *dircache.Cache, guard *server.PathGuard, logger *logrus.Logger) error {
	port := cfg.Global.ListenPort
	app, err := server.NewApp(server.AppOptions{
		Logger:     logger,
		Cache:      cache,
		Guard:      guard,
		ListenPort: port,
	})
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"action": "listen",
		"port":   port,
	}).Info("Fiber 服务启动")

	return app.Listen(fmt.Sprintf(":%d", port))
}
