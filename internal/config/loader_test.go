package config_test

import (
	"context"
	"errors"
	"os"
	"runtime"
	"testing"

	"github.com/okian/delfos/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.SourceDir, convey.ShouldEqual, "../db_30_0_text")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
				convey.So(cfg.Rules, convey.ShouldBeEmpty)
				convey.So(cfg.Professions, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("DELFOS_SOURCE_DIR", "/data/onet")
			_ = os.Setenv("DELFOS_OUTPUT_FILE", "/tmp/out.json")
			_ = os.Setenv("DELFOS_QUEUE_SIZE", "64")
			_ = os.Setenv("DELFOS_WORKER_COUNT", "3")
			_ = os.Setenv("DELFOS_DEBUG", "true")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.SourceDir, convey.ShouldEqual, "/data/onet")
				convey.So(cfg.OutputFile, convey.ShouldEqual, "/tmp/out.json")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 64)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 3)
				convey.So(cfg.Debug, convey.ShouldBeTrue)
				convey.So(cfg.EffectiveLogLevel(), convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
source_dir: /srv/onet
queue_size: 128
tables:
  - Skills.txt
  - Knowledge.txt
metrics_file: /var/lib/node_exporter/delfos.prom
professions:
  medicina: ["29-1210", "29-1229"]
  musica: ["27-2042"]
rules:
  - pattern: "music|sound"
    aptitude: musica
  - pattern: "medicine|biology"
    aptitude: natureza
`
			tmpFile := createTempConfigFile(t, yamlContent)

			_ = os.Setenv("DELFOS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.SourceDir, convey.ShouldEqual, "/srv/onet")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 128)
				convey.So(cfg.Tables, convey.ShouldResemble, []string{"Skills.txt", "Knowledge.txt"})
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "/var/lib/node_exporter/delfos.prom")
				convey.So(cfg.Professions, convey.ShouldResemble, map[string][]string{
					"medicina": {"29-1210", "29-1229"},
					"musica":   {"27-2042"},
				})
				convey.So(cfg.Rules, convey.ShouldResemble, []config.Rule{
					{Pattern: "music|sound", Aptitude: "musica"},
					{Pattern: "medicine|biology", Aptitude: "natureza"},
				})
			})

			convey.Convey("Then the default output file is kept", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.OutputFile, convey.ShouldEqual, "data/onet_processed.json")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, "source_dir: /srv/onet\nqueue_size: 128\n")

			_ = os.Setenv("DELFOS_CONFIG", tmpFile)
			_ = os.Setenv("DELFOS_SOURCE_DIR", "/override")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.SourceDir, convey.ShouldEqual, "/override")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 128)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("DELFOS_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the config file is malformed", func() {
			tmpFile := createTempConfigFile(t, "source_dir: [unterminated\n")

			_ = os.Setenv("DELFOS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When an env value has the wrong type", func() {
			_ = os.Setenv("DELFOS_WORKER_COUNT", "not_a_number")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the loaded values do not validate", func() {
			tmpFile := createTempConfigFile(t, "output_file: \"\"\n")

			_ = os.Setenv("DELFOS_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "output_file must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"DELFOS_CONFIG",
		"DELFOS_SOURCE_DIR",
		"DELFOS_OUTPUT_FILE",
		"DELFOS_QUEUE_SIZE",
		"DELFOS_WORKER_COUNT",
		"DELFOS_DEBUG",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "delfos-config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatal(err)
	}
	if err := tmpFile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpFile.Name()
}
