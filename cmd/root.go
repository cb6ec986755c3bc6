package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/openqda/qda"
	"github.com/openqda/qda/internal/cache"
	"github.com/openqda/qda/internal/compress"
	"github.com/openqda/qda/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "qda",
	Short: "text coding database tool",
	Example: `qda db init -p <admin-password>
qda coder list
qda coder add -n <name> -p <password>
qda doc create -t <title> -c <text>
qda doc list
qda doc delete -d <doc-id>`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(coderCmd)
	rootCmd.AddCommand(docCmd)
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}

// newClient connects to the configured data source.
func newClient() (*qda.Client, error) {
	cnf := config.LoadConfig()

	var kv cache.KV = cache.NewMemory()
	if cnf.RedisAddr != "" {
		kv = cache.NewRedis(cnf.RedisAddr)
	}

	return qda.NewClientWith(cnf.Profile(), compress.FromName(cnf.Compression), kv)
}
