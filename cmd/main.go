package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"payment-ipn-api/internal/config"
	"payment-ipn-api/internal/dal"
	"payment-ipn-api/internal/dao"
	"payment-ipn-api/internal/event"
	"payment-ipn-api/internal/gateway"
	"payment-ipn-api/internal/handler"
	"payment-ipn-api/internal/idgen"
	"payment-ipn-api/internal/logger"
	"payment-ipn-api/internal/middleware"
	"payment-ipn-api/internal/mq"
	"payment-ipn-api/internal/notify"
	"payment-ipn-api/internal/service"
	"payment-ipn-api/internal/settlement"
	"payment-ipn-api/internal/utils"
)

func main() {
	cfgPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	// load config env
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// init infra
	db, err := dal.NewMainDB(cfg.Mysql, log)
	if err != nil {
		log.Fatalf("init mysql: %v", err)
	}
	node, err := idgen.NewNode(cfg.Node.ID)
	if err != nil {
		log.Fatalf("init idgen: %v", err)
	}
	pub, closePub, err := newPublisher(ctx, cfg, log)
	if err != nil {
		log.Fatalf("init publisher: %v", err)
	}
	defer closePub()

	var alert notify.Alerter
	if tg := notify.NewTelegramAlerter(cfg.Telegram, log); tg != nil {
		alert = tg
	}

	registry := gateway.NewRegistry(
		gateway.NewVNPay(cfg.VNPay.HashKey, log),
		gateway.NewPayPal(cfg.PayPal.VerifyURL, cfg.PayPal.ReceiverEmail, utils.DefaultHTTPClient, log),
	)
	svc := service.NewIpnService(
		registry,
		settlement.NewApplier(dao.NewPaymentDao(db), log),
		notify.NewNotifier(pub, cfg.Notify.Topic, node, alert, log),
		alert,
		log,
	)

	// http server
	if cfg.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	// 设置可信代理 IP（如本地或内网），其余来源的转发头一律忽略
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		log.Fatalf("invalid server.trustedProxies: %v", err)
	}
	r.Use(middleware.Recover(log), middleware.RequestLogger(log))
	handler.RegisterRoutes(r, handler.NewIpnHandler(svc), middleware.IPWhitelist(cfg.Server.IPWhitelist, log))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Infof("listening %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
	log.Info("server stopped")
}

// newPublisher 未配置 topic 时不建立任何消息连接
func newPublisher(ctx context.Context, cfg *config.Root, log *logrus.Logger) (event.Publisher, func(), error) {
	noop := func() {}
	if !cfg.NotificationsEnabled() {
		log.Info("notification topic not configured, payment events disabled")
		return nil, noop, nil
	}

	switch cfg.Notify.Driver {
	case "rabbitmq":
		conn, err := dal.NewRabbitMQ(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			return nil, noop, err
		}
		return mq.NewRabbitPublisher(conn), func() { _ = conn.Close() }, nil
	case "redis":
		rdb, err := dal.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		return mq.NewRedisPublisher(rdb), func() { _ = rdb.Close() }, nil
	case "sns":
		p, err := mq.NewSNSPublisher(ctx, cfg.SNS)
		if err != nil {
			return nil, noop, err
		}
		return p, noop, nil
	default:
		return nil, noop, fmt.Errorf("unsupported notify driver %q", cfg.Notify.Driver)
	}
}
