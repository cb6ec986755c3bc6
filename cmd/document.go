package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openqda/qda/internal/model"
)

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "document commands",
}

func init() {
	docCmd.AddCommand(createDocCmd())
	docCmd.AddCommand(listDocCmd())
	docCmd.AddCommand(deleteDocCmd())
}

func createDocCmd() *cobra.Command {
	var title string
	var text string
	var author string

	command := &cobra.Command{
		Use:     "create",
		Short:   "create a document",
		Example: "qda doc create -t <title> -c <text> -a <author>",
		Run: func(cmd *cobra.Command, args []string) {
			if title == "" {
				logrus.Error("missing flag: -t <title>")
				return
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			doc := &model.Document{
				Title:   title,
				Text:    text,
				Author:  author,
				CoderID: client.Session().CoderID(),
			}
			if !client.Documents.AddDocuments(context.Background(), []*model.Document{doc}) {
				logrus.Error("adding document failed")
				return
			}

			fmt.Printf("created document %d\n", doc.ID)
		},
	}

	command.Flags().StringVarP(&title, "title", "t", "", "document title")
	command.Flags().StringVarP(&text, "content", "c", "", "document text")
	command.Flags().StringVarP(&author, "author", "a", "", "document author")

	return command
}

func listDocCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "list",
		Short: "list documents",
		Run: func(cmd *cobra.Command, args []string) {
			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			for _, doc := range client.Documents.GetTableDocuments(context.Background()) {
				fmt.Printf("%d\t%s\t%s\t%s\t%d statements\n",
					doc.ID, doc.Title, doc.CoderName, doc.Date.Format("2006-01-02"), doc.Frequency)
			}
		},
	}

	return command
}

func deleteDocCmd() *cobra.Command {
	var docID int64

	command := &cobra.Command{
		Use:     "delete",
		Short:   "delete a document with its statements",
		Example: "qda doc delete -d <doc-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if docID == 0 {
				logrus.Error("missing flag: -d <doc-id>")
				return
			}

			client, err := newClient()
			if err != nil {
				logrus.Error(err)
				return
			}
			defer client.Close()

			if !client.Documents.DeleteDocuments(context.Background(), []int64{docID}) {
				logrus.Error("deleting document failed")
				return
			}

			fmt.Printf("deleted document %d\n", docID)
		},
	}

	command.Flags().Int64VarP(&docID, "doc-id", "d", 0, "document id")

	return command
}
