package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Rana718/retailgen/internal/config"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	Version = "0.3.0"
)

var rootCmd = &cobra.Command{
	Use:   "retailgen",
	Short: "Generate a large synthetic retail dataset",
	Long: `
retailgen synthesizes customers, orders and line-item transactions and streams
them into a database in bounded batches.

The data is deliberately messy: missing fields, inconsistent formats, name
typos and near-duplicate customer records, with prices scaled by each
country's purchasing power. Referential integrity always holds, and a run is
reproducible from its seed.

Database Support:
- PostgreSQL (COPY protocol)
- MySQL (multi-row inserts)
- SQLite (embedded databases)
- memory (dry runs)`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("retailgen version %s\n", Version)
			os.Exit(0)
		}
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./retailgen.config.json)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log every loaded batch")
	rootCmd.PersistentFlags().String("provider", "", "Database provider: postgresql, mysql, sqlite or memory")
	viper.BindPFlag("database.provider", rootCmd.PersistentFlags().Lookup("provider"))

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(config.FileName)
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		color.Yellow("⚠️  Could not read config file %s: %v", cfgFile, err)
	}
}
