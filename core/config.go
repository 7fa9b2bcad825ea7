package core

import (
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env      string // DEV (local; default), TEST, QA, PROD
		Debug    bool
		TestMode bool
		AppName  string
		Build    string
		WorkDir  string

		DefaultFromEmail mail.Address
		ForwardEmail     string // forward a copy of sent portal messages here; disabled if empty
		SendgridApiKey   string
		RollbarToken     string

		Server   ServerConfig
		Portal   PortalConfig
		Cache    CacheConfig
		Database DatabaseConfig
	}

	ServerConfig struct {
		Host string
		Addr string
	}

	// PortalConfig points at the remote school-management API.
	PortalConfig struct {
		BaseURL string
		Timeout time.Duration
	}

	CacheConfig struct {
		ForcedOffline  bool
		NoticesTTL     time.Duration
		CourseTTL      time.Duration
		AssessmentsTTL time.Duration
		GoalsTTL       time.Duration
		FoliosTTL      time.Duration
		MessagesTTL    time.Duration
	}

	DatabaseConfig struct {
		Path string // sqlite data file
	}
)

// NewConfig loads the app configuration from the environment.
// Defaults are overridden by `<ENV>_`-prefixed env vars; a config/.env.<env>
// file is loaded first if it exists.
func NewConfig() (*Config, error) {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Darasa")
	conf.SetDefault("build", "dev")
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddr", ":8000")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("forwardEmail", "")
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("portalBaseUrl", "https://learn.darasa.cd")
	conf.SetDefault("portalTimeout", 30*time.Second)
	conf.SetDefault("forcedOffline", false)
	conf.SetDefault("noticesTtl", 30*time.Minute)
	conf.SetDefault("courseTtl", time.Hour)
	conf.SetDefault("assessmentsTtl", 30*time.Minute)
	conf.SetDefault("goalsTtl", time.Hour)
	conf.SetDefault("foliosTtl", time.Hour)
	conf.SetDefault("messagesTtl", 10*time.Minute)
	conf.SetDefault("databasePath", "")

	var testMode bool
	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		testMode = true
	}
	conf.SetEnvPrefix(env)

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	conf.AutomaticEnv()

	dbPath := conf.GetString("databasePath")
	if dbPath == "" {
		dbPath = filepath.Join(wd, "darasa.db")
	}

	return &Config{
		Env:      env,
		Debug:    conf.GetBool("debug"),
		TestMode: testMode,
		AppName:  conf.GetString("appName"),
		Build:    conf.GetString("build"),
		WorkDir:  wd,
		DefaultFromEmail: mail.Address{
			Name:    conf.GetString("appName"),
			Address: conf.GetString("defaultFromEmail"),
		},
		ForwardEmail:   conf.GetString("forwardEmail"),
		SendgridApiKey: conf.GetString("sendgridApiKey"),
		RollbarToken:   conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Host: conf.GetString("serverHost"),
			Addr: conf.GetString("serverAddr"),
		},
		Portal: PortalConfig{
			BaseURL: strings.TrimRight(conf.GetString("portalBaseUrl"), "/"),
			Timeout: conf.GetDuration("portalTimeout"),
		},
		Cache: CacheConfig{
			ForcedOffline:  conf.GetBool("forcedOffline"),
			NoticesTTL:     conf.GetDuration("noticesTtl"),
			CourseTTL:      conf.GetDuration("courseTtl"),
			AssessmentsTTL: conf.GetDuration("assessmentsTtl"),
			GoalsTTL:       conf.GetDuration("goalsTtl"),
			FoliosTTL:      conf.GetDuration("foliosTtl"),
			MessagesTTL:    conf.GetDuration("messagesTtl"),
		},
		Database: DatabaseConfig{Path: dbPath},
	}, nil
}
