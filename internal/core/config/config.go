package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"

	"go-user-registry/internal/validate"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type Log struct {
	Level      string
	JSON       bool
	File       string // 非空则同时写文件并按大小切割
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

// Policy 校验策略档位；历史部署阈值漂移统一收口到配置
type Policy struct {
	UsernameMin        int
	UsernameMax        int
	AllowUnderscore    bool
	PasswordMin        int
	PasswordMax        int
	ForbidTripleRepeat bool
	RequireEmail       bool
}

type Hash struct {
	Cost int // bcrypt work factor
}

type Config struct {
	App    App
	Log    Log
	DB     DB
	Policy Policy
	Hash   Hash
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 5)
	v.SetDefault("app.http.writetimeoutsec", 10)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("db.maxopenconns", 20)
	v.SetDefault("db.maxidleconns", 5)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("db.automigrate", true)
	v.SetDefault("db.loglevel", "warn")

	p := validate.DefaultPolicy()
	v.SetDefault("policy.usernamemin", p.UsernameMin)
	v.SetDefault("policy.usernamemax", p.UsernameMax)
	v.SetDefault("policy.allowunderscore", p.AllowUnderscore)
	v.SetDefault("policy.passwordmin", p.PasswordMin)
	v.SetDefault("policy.passwordmax", p.PasswordMax)
	v.SetDefault("policy.forbidtriplerepeat", p.ForbidTripleRepeat)
	v.SetDefault("policy.requireemail", p.RequireEmail)
	v.SetDefault("hash.cost", 10)
}

// ValidatePolicy 转成校验引擎的策略对象
func (c *Config) ValidatePolicy() validate.Policy {
	return validate.Policy{
		UsernameMin:        c.Policy.UsernameMin,
		UsernameMax:        c.Policy.UsernameMax,
		AllowUnderscore:    c.Policy.AllowUnderscore,
		PasswordMin:        c.Policy.PasswordMin,
		PasswordMax:        c.Policy.PasswordMax,
		ForbidTripleRepeat: c.Policy.ForbidTripleRepeat,
		RequireEmail:       c.Policy.RequireEmail,
	}
}
