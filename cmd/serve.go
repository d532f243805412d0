package cmd

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"naca/calculator"
	"naca/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve airfoil sessions over websocket on /ws",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Addr = addr
			}
			upgrader := websocket.Upgrader{
				ReadBufferSize:  1024,
				WriteBufferSize: 1024,
				CheckOrigin: func(r *http.Request) bool {
					return true
				},
			}
			s := server.NewServer(a.cfg.Addr, upgrader, calculator.NewWithXFoil(a.cfg))
			return s.Serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":9000", "listen address")
	return cmd
}
