package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"reflect"
	"strings"
	"syscall"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Brownie44l1/iris-api/internal/config"
	"github.com/Brownie44l1/iris-api/internal/logger"
	"github.com/Brownie44l1/iris-api/internal/server"
	"github.com/Brownie44l1/iris-api/internal/version"
)

const envPrefix = "IRIS"

var (
	cfg     *config.Config
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "iris-api",
	Short: "HTTP API for iris species classification",
	Long: `iris-api loads a pre-trained classifier and feature scaler at startup and
serves species predictions from four flower measurements over HTTP.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(viper.GetViper(), cfgFile, cfg)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		rotateConfig := logger.LogRotateConfig{
			MaxSize:    cfg.Server.LogMaxSize,
			MaxAge:     cfg.Server.LogMaxAge,
			MaxBackups: cfg.Server.LogMaxBackups,
		}
		if err := logger.Init(cfg.Verbose, cfg.Console, cfg.Server.LogDir, rotateConfig); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer logger.Sync()

		return runServer()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "show version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Version())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func init() {
	cfg = config.New()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "path of the yaml config file")
	flags.Bool("verbose", cfg.Verbose, "enable debug logging")
	flags.Bool("console", cfg.Console, "log to stderr instead of log files")
	flags.Int("port", cfg.Server.Port, "listen port")

	// Flags win over config file and environment.
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("console", flags.Lookup("console"))
	_ = viper.BindPFlag("server.port", flags.Lookup("port"))

	rootCmd.AddCommand(versionCmd)
}

// loadConfig merges the yaml file and IRIS_* environment into cfg. PORT is
// honored as well, for platforms that assign the listen port.
func loadConfig(v *viper.Viper, path string, cfg *config.Config) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", envPrefix+"_SERVER_PORT", "PORT"); err != nil {
		return err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// AutomaticEnv only resolves keys viper already knows about. A nil
	// default registers the key and leaves the value in cfg untouched.
	for _, key := range configKeys(cfg) {
		v.SetDefault(key, nil)
	}

	if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

func runServer() error {
	logger.Infof("version:\n%s", version.Version())

	svr, err := server.New(cfg)
	if err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		logger.Infof("received signal %s, shutting down", sig)
		svr.Stop()
	}()

	return svr.Serve()
}

// configKeys lists the dotted mapstructure keys of every leaf field.
func configKeys(cfg any) []string {
	var keys []string
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "" {
				continue
			}

			key := name
			if prefix != "" {
				key = prefix + "." + name
			}

			if field.Type.Kind() == reflect.Struct {
				walk(field.Type, key)
				continue
			}
			keys = append(keys, key)
		}
	}

	t := reflect.TypeOf(cfg)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	walk(t, "")
	return keys
}
