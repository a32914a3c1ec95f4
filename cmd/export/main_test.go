package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "")
	t.Setenv("TABLE_SEED_ROWS", "30")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExport_Stdout(t *testing.T) {
	out, err := execute(t, "--table", "negocios", "--sort", "value", "--dir", "desc")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 31)
	assert.Equal(t, "Identificación,Usuario,Email,Plazo,Fecha,Valor,Producto,Estado", lines[0])
}

func TestExport_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usuarios.csv")
	out, err := execute(t, "-t", "usuarios", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Nombre"), string(data))
}

func TestExport_List(t *testing.T) {
	out, err := execute(t, "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "negocios")
	assert.Contains(t, out, "usuarios")
}

func TestExport_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown table", []string{"-t", "ventas"}, "unknown table"},
		{"bad direction", []string{"--sort", "value", "--dir", "up"}, "invalid --dir"},
		{"unsortable column", []string{"--sort", "actions"}, "cannot be sorted"},
		{"criteria on users", []string{"-t", "usuarios", "--criteria", "x"}, "not supported"},
		{"bad search type", []string{"--criteria", "x", "--type", "nombre"}, "unknown search type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
