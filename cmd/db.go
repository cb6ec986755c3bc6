package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openqda/qda/internal/config"
	"github.com/openqda/qda/internal/model"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "db commands",
}

func init() {
	dbCmd.AddCommand(initDBCmd())
	dbCmd.AddCommand(migrateCmd())
}

func initDBCmd() *cobra.Command {
	var adminPassword string

	command := &cobra.Command{
		Use:   "init",
		Short: "create the schema and seed rows",
		Run: func(cmd *cobra.Command, args []string) {
			if adminPassword == "" {
				logrus.Error("missing flag: -p <admin-password>")
				return
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			if !client.CreateSchema(context.Background(), adminPassword) {
				logrus.Error("schema creation failed")
				return
			}

			logrus.Info("schema created")
		},
	}

	command.Flags().StringVarP(&adminPassword, "password", "p", "", "admin password")

	return command
}

func migrateCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database",
		Run: func(cmd *cobra.Command, args []string) {
			db := config.GetDb(config.LoadConfig())
			err := model.Migrate(db)
			if err != nil {
				panic(err)
			}
		},
	}

	return command
}
