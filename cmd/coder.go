package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openqda/qda/internal/model"
)

var coderCmd = &cobra.Command{
	Use:   "coder",
	Short: "coder commands",
}

func init() {
	coderCmd.AddCommand(listCodersCmd())
	coderCmd.AddCommand(addCoderCmd())
}

func listCodersCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "list",
		Short: "list coders",
		Run: func(cmd *cobra.Command, args []string) {
			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			for _, coder := range client.Coders.GetCoders(context.Background()) {
				fmt.Printf("%d\t%s\t#%02x%02x%02x\n", coder.ID, coder.Name, coder.Red, coder.Green, coder.Blue)
			}
		},
	}

	return command
}

func addCoderCmd() *cobra.Command {
	var name string
	var password string

	command := &cobra.Command{
		Use:     "add",
		Short:   "add a coder",
		Example: "qda coder add -n <name> -p <password>",
		Run: func(cmd *cobra.Command, args []string) {
			if name == "" || password == "" {
				logrus.Error("missing flags: -n <name> -p <password>")
				return
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			coder := &model.Coder{Name: name}
			id := client.Coders.AddCoder(context.Background(), coder, password)
			if id < 0 {
				logrus.Error("adding coder failed")
				return
			}

			fmt.Printf("created coder %d\n", id)
		},
	}

	command.Flags().StringVarP(&name, "name", "n", "", "coder name")
	command.Flags().StringVarP(&password, "password", "p", "", "coder password")

	return command
}
