package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/controllers"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/routes"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/router"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/ws"
)

var routesCmd = &cobra.Command{
	Use:   "route:list",
	Short: "Print every registered route",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := router.New()
		// Handlers are only mounted, never called, so nil services are fine.
		routes.RegisterAPI(r, &routes.API{
			Auth:     controllers.NewAuthController(nil),
			Admins:   controllers.NewAdminController(nil),
			Products: controllers.NewProductController(nil),
			Orders:   controllers.NewOrderController(nil),
			Users:    controllers.NewUserController(nil),
			Stats:    controllers.NewStatsController(nil),
			Live:     controllers.NewLiveController(ws.NewHub()),
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		for _, route := range r.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", route.Method, route.Path, route.Name)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
