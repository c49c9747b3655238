package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerCfg struct {
	Port        string   `mapstructure:"port"`
	Mode        string   `mapstructure:"mode"`
	IPWhitelist []string `mapstructure:"ipWhitelist"`

	// 只信任这些来源转发的 X-Forwarded-For / X-Real-IP
	TrustedProxies []string `mapstructure:"trustedProxies"`
}
type MysqlCfg struct {
	Host         string `mapstructure:"host" validate:"required"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database" validate:"required"`
	Username     string `mapstructure:"username" validate:"required"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}
type VNPayCfg struct {
	HashKey string `mapstructure:"hashKey" validate:"required"`
}
type PayPalCfg struct {
	VerifyURL     string `mapstructure:"verifyUrl"`
	ReceiverEmail string `mapstructure:"receiverEmail"`
}
type NotifyCfg struct {
	Driver string `mapstructure:"driver" validate:"oneof=rabbitmq redis sns"`
	Topic  string `mapstructure:"topic"`
}
type RabbitCfg struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}
type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}
type SNSCfg struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"accessKey"`
	SecretKey string `mapstructure:"secretKey"`
}
type TelegramCfg struct {
	BotToken string `mapstructure:"botToken"`
	ChatID   string `mapstructure:"chatId"`
}
type LogCfg struct {
	Dir   string `mapstructure:"dir"`
	Level string `mapstructure:"level"`
}
type NodeCfg struct {
	ID int64 `mapstructure:"id" validate:"gte=0,lte=1023"`
}

type Root struct {
	Server   ServerCfg   `mapstructure:"server"`
	Mysql    MysqlCfg    `mapstructure:"mysql"`
	VNPay    VNPayCfg    `mapstructure:"vnpay"`
	PayPal   PayPalCfg   `mapstructure:"paypal"`
	Notify   NotifyCfg   `mapstructure:"notify"`
	RabbitMQ RabbitCfg   `mapstructure:"rabbitmq"`
	Redis    RedisCfg    `mapstructure:"redis"`
	SNS      SNSCfg      `mapstructure:"sns"`
	Telegram TelegramCfg `mapstructure:"telegram"`
	Log      LogCfg      `mapstructure:"log"`
	Node     NodeCfg     `mapstructure:"node"`
}

// envBindings 兼容原有部署使用的环境变量名
var envBindings = map[string]string{
	"vnpay.hashKey":  "VNPAY_HASH_KEY",
	"mysql.host":     "DB_HOST",
	"mysql.port":     "DB_PORT",
	"mysql.username": "DB_USER",
	"mysql.password": "DB_PASSWORD",
	"mysql.database": "DB_NAME",
	"notify.topic":   "PAYMENT_NOTIFICATION_TOPIC_ARN",
}

// Load 读取配置文件（可选）与环境变量，返回校验后的配置
func Load(path string) (*Root, error) {
	_ = godotenv.Load() // 自动加载 .env 文件

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("IPN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env, "IPN_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_"))); err != nil {
			return nil, fmt.Errorf("bind env %s failed: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config file failed: %w", err)
			}
		}
	}

	var c Root
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}
	normalize(&c)

	if err := validator.New().Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("mysql.port", 3306)
	v.SetDefault("mysql.charset", "utf8mb4")
	v.SetDefault("mysql.maxIdleConns", 5)
	v.SetDefault("mysql.maxOpenConns", 20)
	v.SetDefault("notify.driver", "rabbitmq")
	v.SetDefault("rabbitmq.exchange", "payment_events")
	v.SetDefault("log.level", "info")
	v.SetDefault("node.id", 1)
	v.SetDefault("redis.db", 0)
	v.SetDefault("server.ipWhitelist", []string{})
	v.SetDefault("server.trustedProxies", []string{"127.0.0.1"})

	// AutomaticEnv 只对已知 key 生效，这里把可选项都注册一遍
	for _, k := range []string{
		"vnpay.hashKey", "mysql.host", "mysql.database", "mysql.username", "mysql.password",
		"paypal.verifyUrl", "paypal.receiverEmail", "notify.topic",
		"rabbitmq.url", "redis.addr", "redis.password",
		"sns.region", "sns.endpoint", "sns.accessKey", "sns.secretKey",
		"telegram.botToken", "telegram.chatId", "log.dir",
	} {
		if !v.IsSet(k) {
			v.SetDefault(k, "")
		}
	}
}

// sane defaults
func normalize(c *Root) {
	if strings.TrimSpace(c.Server.Port) == "" {
		c.Server.Port = "8080"
	}
	c.VNPay.HashKey = strings.TrimSpace(c.VNPay.HashKey)
	c.Notify.Driver = strings.ToLower(strings.TrimSpace(c.Notify.Driver))
	c.Notify.Topic = strings.TrimSpace(c.Notify.Topic)
	if c.Mysql.Charset == "" {
		c.Mysql.Charset = "utf8mb4"
	}
}

// NotificationsEnabled 未配置 topic 视为关闭通知，而不是错误
func (c *Root) NotificationsEnabled() bool {
	return c.Notify.Topic != ""
}
