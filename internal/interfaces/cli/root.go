// Package cli es la capa de presentación: comandos cobra que construyen un cofre,
// invocan sus operaciones públicas e imprimen el resultado.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jhoicas/chestcraft/pkg/config"
	"github.com/jhoicas/chestcraft/pkg/logger"
)

// RootOptions flags globales.
type RootOptions struct {
	Format  string // text | json
	Policy  string // total | slots | unbounded
	Limit   int
	Metrics bool
	Verbose bool

	cfg *config.Config
}

// ValidFormats formatos de salida permitidos.
var ValidFormats = []string{"text", "json"}

// NewRootCommand crea el comando raíz "chest". Los defaults de capacidad vienen de cfg.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	opts := &RootOptions{cfg: cfg}

	cmd := &cobra.Command{
		Use:           "chest",
		Short:         "Cofre de inventario con crafteo transaccional",
		Long:          "Demostraciones del cofre: inventario acotado clave → cantidad y crafteo atómico verificar → consumir → producir.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return WrapExitError(ExitCommandError, fmt.Sprintf("formato %q inválido: use uno de %v", opts.Format, ValidFormats), nil)
			}
			level := cfg.Log.Level
			if opts.Verbose {
				level = "debug"
			}
			log := logger.New(logger.Config{
				Env:   cfg.App.Env,
				Level: level,
				Out:   cmd.ErrOrStderr(),
			})
			log.Debug().
				Str("app", cfg.App.Name).
				Str("env", cfg.App.Env).
				Str("policy", opts.Policy).
				Int("limit", opts.Limit).
				Msg("configuración cargada")
			cmd.SetContext(log.WithContext(cmd.Context()))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "formato de salida (text|json)")
	cmd.PersistentFlags().StringVar(&opts.Policy, "policy", cfg.Chest.Policy, "política de capacidad (total|slots|unbounded)")
	cmd.PersistentFlags().IntVar(&opts.Limit, "limit", cfg.Chest.Limit, "límite de la política de capacidad")
	cmd.PersistentFlags().BoolVar(&opts.Metrics, "metrics", false, "imprimir los contadores de crafteo al final")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "logs de depuración")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "flag inválido", err)
	})

	cmd.AddCommand(NewDemoCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))

	return cmd
}
