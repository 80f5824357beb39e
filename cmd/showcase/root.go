package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-showcase"
)

const envPrefix = "SHOWCASE"

// envKeys are the configuration keys that can be overridden through
// SHOWCASE_* environment variables.
var envKeys = []string{
	"content.source",
	"content.base_url",
	"content.files_dir",
	"content.page_size",
	"content.paginate",
	"cache.enabled",
	"cache.provider",
	"cache.default_ttl",
	"cache.redis_url",
	"cache.prefix",
	"media.base_url",
	"http.addr",
	"http.base_path",
	"features.logger",
	"features.team_cached_labels",
	"logging.provider",
	"logging.level",
	"logging.format",
}

type cliOptions struct {
	configFile string
	envFile    string
	source     string
	filesDir   string
	baseURL    string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	opts := &cliOptions{}
	v := viper.New()

	root := &cobra.Command{
		Use:           "showcase",
		Short:         "Portfolio showcase engine",
		Long:          "Showcase fetches portfolio cases, news, banners and team records, composes the filtered listing and serves it as a JSON API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaults := showcase.DefaultConfig()
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (yaml or json)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.StringVar(&opts.source, "source", defaults.Content.Source, "content source (api or files)")
	flags.StringVar(&opts.filesDir, "files-dir", defaults.Content.FilesDir, "markdown content directory for the files source")
	flags.StringVar(&opts.baseURL, "base-url", defaults.Content.BaseURL, "content API base URL")
	flags.StringVar(&opts.logLevel, "log-level", defaults.Logging.Level, "log level (trace, debug, info, warn, error)")

	_ = v.BindPFlag("content.source", flags.Lookup("source"))
	_ = v.BindPFlag("content.files_dir", flags.Lookup("files-dir"))
	_ = v.BindPFlag("content.base_url", flags.Lookup("base-url"))
	_ = v.BindPFlag("logging.level", flags.Lookup("log-level"))

	root.AddCommand(
		newServeCommand(opts, v),
		newRowsCommand(opts, v),
		newRefreshCommand(opts, v),
	)
	return root
}

// loadConfig layers the dotenv file, the config file, SHOWCASE_* variables
// and flags over the default configuration.
func loadConfig(opts *cliOptions, v *viper.Viper) (showcase.Config, error) {
	cfg := showcase.DefaultConfig()

	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load env file %s: %w", opts.envFile, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return cfg, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if opts.configFile != "" {
		v.SetConfigFile(opts.configFile)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", opts.configFile, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func buildModule(opts *cliOptions, v *viper.Viper) (*showcase.Module, error) {
	cfg, err := loadConfig(opts, v)
	if err != nil {
		return nil, err
	}
	return showcase.New(cfg)
}
