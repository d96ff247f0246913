package cli_test

import (
	"bytes"
	"testing"

	"github.com/jhoicas/chestcraft/internal/interfaces/cli"
	"github.com/jhoicas/chestcraft/pkg/config"
)

// execute corre el comando raíz con la configuración por defecto y captura stdout y stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return executeWith(t, config.Default(), args...)
}

// executeWith igual que execute con una configuración propia.
func executeWith(t *testing.T, cfg *config.Config, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCommand(cfg)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
