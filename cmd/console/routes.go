package main

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"github.com/xela07ax/blytz-console/internal/infra"
	"go.uber.org/zap"
)

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print registered HTTP routes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := infra.LoadConfig(configPath)
			if err != nil {
				return err
			}
			// Для печати маршрутов Redis не нужен
			cfg.Views.Store = "memory"

			a, err := buildApp(cfg, zap.NewNop())
			if err != nil {
				return err
			}

			var lines []string
			err = chi.Walk(a.server.Routes(), func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
				lines = append(lines, fmt.Sprintf("%-7s %s", method, strings.TrimSuffix(route, "/*")))
				return nil
			})
			if err != nil {
				return err
			}
			sort.Strings(lines)
			for _, l := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}
}
