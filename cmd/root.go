package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// jsonOutput switches rendering to plain JSON documents.
	jsonOutput bool
	// planFlag and platformFlag select which task file commands act on.
	planFlag     string
	platformFlag string
	// version is the application version.
	version = "0.3.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "planwing",
	Short: "PlanWing tracks implementation tasks generated from project plans.",
	Long: `PlanWing CLI manages per-platform implementation task lists.
Tasks live in one flat file per (plan, platform) pair and carry
platform-prefixed sequential IDs (fe-0001, be-0001, ...).`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.planwing/.planwing.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of styled output")
	rootCmd.PersistentFlags().StringVar(&planFlag, "plan", "", "plan name (default from config, else \"default\")")
	rootCmd.PersistentFlags().StringVar(&platformFlag, "platform", "", "platform: frontend or backend (required unless set in config)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("project.plan", rootCmd.PersistentFlags().Lookup("plan"))
	_ = viper.BindPFlag("project.platform", rootCmd.PersistentFlags().Lookup("platform"))
}
