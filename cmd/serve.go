package cmd

import (
	"fmt"
	"log/slog"

	"github.com/inovacc/phonebook/internal/web"
	"github.com/spf13/cobra"
)

var (
	serveFile string
	serveAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a directory workbook over the remote store protocol",
	Long: `Serve an xlsx workbook as a remote store, for local use and testing.

The workbook's first sheet holds one entry per row below a
Location/Extension/Username header. It is created if missing and saved after
every change. Point clients at it with --endpoint http://ADDR/exec.

The server runs until interrupted with Ctrl+C or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !debugFlag {
			logLevel.Set(slog.LevelInfo)
		}

		srv, err := web.New(web.Config{Addr: serveAddr, File: serveFile}, web.Options{Logger: slog.Default()})
		if err != nil {
			return err
		}

		defer func() {
			if err := srv.Close(); err != nil {
				slog.Error("failed to close workbook", slog.String("error", err.Error()))
			}
		}()

		go func() {
			select {
			case <-srv.Ready():
				fmt.Printf("Serving %s on http://%s/exec\n", serveFile, srv.Addr())
			case <-cmd.Context().Done():
			}
		}()

		return srv.Start(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	defaults := web.DefaultConfig()
	serveCmd.Flags().StringVar(&serveFile, "file", defaults.File, "Workbook holding the directory")
	serveCmd.Flags().StringVar(&serveAddr, "addr", defaults.Addr, "Listen address")
}
