package flags

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/devclay92/basic-service/app"
)

func buildConfig(t *testing.T, args ...string) app.Config {
	t.Helper()
	var cfg app.Config
	var buildErr error

	cliApp := &cli.App{
		Flags: ServerFlags,
		Action: func(cCtx *cli.Context) error {
			cfg, buildErr = BuildConfig(cCtx)
			return buildErr
		},
	}
	require.NoError(t, cliApp.Run(append([]string{"basic-service"}, args...)))
	require.NoError(t, buildErr)
	return cfg
}

func TestBuildConfig_Defaults(t *testing.T) {
	cfg := buildConfig(t)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr())
	assert.True(t, cfg.Swagger)
	assert.Equal(t, "/docs", cfg.DocsPath)
	assert.Equal(t, "public", cfg.AssetDir)
	assert.Equal(t, "/swagger.json", cfg.SwaggerLocation)
	assert.Equal(t, 45*time.Second, cfg.DrainDuration)
}

func TestBuildConfig_FlagOverrides(t *testing.T) {
	cfg := buildConfig(t,
		"--listen-addr", "0.0.0.0:9090",
		"--metrics-addr", "127.0.0.1:9091",
		"--docs-path", "/apidocs",
		"--docs-assets", "assets",
		"--no-swagger",
		"--pprof",
		"--drain-seconds", "5",
	)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr())
	assert.Equal(t, "127.0.0.1:9091", cfg.MetricsAddr)
	assert.Equal(t, "/apidocs", cfg.DocsPath)
	assert.Equal(t, "assets", cfg.AssetDir)
	assert.False(t, cfg.Swagger)
	assert.True(t, cfg.EnablePprof)
	assert.Equal(t, 5*time.Second, cfg.DrainDuration)
}

func TestBuildConfig_InvalidListenAddr(t *testing.T) {
	cliApp := &cli.App{
		Flags: ServerFlags,
		Action: func(cCtx *cli.Context) error {
			_, err := BuildConfig(cCtx)
			return err
		},
	}
	err := cliApp.Run([]string{"basic-service", "--listen-addr", "no-port"})
	require.Error(t, err)
}
