package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "0.4.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔════════════════════════════════════════════════╗",
		"║   ███████╗███████╗███████╗██████╗ ██╗  ██╗   ██╗ ║",
		"║   ██╔════╝██╔════╝██╔════╝██╔══██╗██║  ╚██╗ ██╔╝ ║",
		"║   ███████╗█████╗  █████╗  ██║  ██║██║   ╚████╔╝  ║",
		"║   ╚════██║██╔══╝  ██╔══╝  ██║  ██║██║    ╚██╔╝   ║",
		"║   ███████║███████╗███████╗██████╔╝███████╗██║    ║",
		"║   ╚══════╝╚══════╝╚══════╝╚═════╝ ╚══════╝╚═╝    ║",
		"║                                                  ║",
		"║        🌱 Generated fake data for any database   ║",
		"╚════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                  ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "seedly",
	Short: "Fill SQLite, PostgreSQL, MySQL and MongoDB with generated fake data",
	Long: `
Seedly inspects a database, asks a generator for realistic values column by
column and inserts the rows for you.

Database Support:
- SQLite (file databases)
- PostgreSQL
- MySQL
- MongoDB (sampled or declared collection models)`,
	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("Seedly CLI version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// configFlags maps each persistent flag to its config key.
var configFlags = map[string]string{
	"dialect":       "database.type",
	"file":          "database.file",
	"host":          "database.host",
	"port":          "database.port",
	"user":          "database.user",
	"password":      "database.password",
	"database":      "database.database",
	"uri":           "database.uri",
	"models-dir":    "database.model_path",
	"single-schema": "database.single_schema_path",
	"provider":      "generator.provider",
	"model":         "generator.model",
	"concurrency":   "seed.concurrency",
	"timeout":       "seed.timeout",
	"log-level":     "log.level",
	"log-format":    "log.format",
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./seedly.config.json)")
	flags.String("dialect-json", "", "Full dialect config as JSON, e.g. '{\"type\":\"sqlite\",\"file\":\"app.db\"}'")

	flags.String("dialect", "", "Database dialect (sqlite, postgres, mysql, mongodb)")
	flags.String("file", "", "SQLite database file")
	flags.String("host", "", "Database host")
	flags.Int("port", 0, "Database port")
	flags.String("user", "", "Database user")
	flags.String("password", "", "Database password")
	flags.String("database", "", "Database name")
	flags.String("uri", "", "MongoDB connection URI")
	flags.String("models-dir", "", "Directory of MongoDB collection models (YAML or JSON)")
	flags.String("single-schema", "", "Single MongoDB collection model file")

	flags.String("provider", "", "Value generator (genai, faker)")
	flags.String("model", "", "Model used by the genai generator")
	flags.Int("concurrency", 0, "Columns generated in parallel")
	flags.Int("timeout", 0, "Command timeout in seconds (0 disables it)")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (console, json)")

	for flag, key := range configFlags {
		viper.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("seedly.config")
	}

	viper.SetEnvPrefix("SEEDLY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		// fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
