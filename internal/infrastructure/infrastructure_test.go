package infrastructure_test

import (
	"slices"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/JaimeStill/canopy/internal/config"
	"github.com/JaimeStill/canopy/internal/infrastructure"
	"github.com/JaimeStill/canopy/pkg/database"
	"github.com/JaimeStill/canopy/pkg/metrics"
	"github.com/JaimeStill/canopy/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func validConfig() *config.Config {
	return &config.Config{
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "canopy",
			User:            "canopy",
			Password:        "canopy",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			ContainerName:    "documents",
			ConnectionString: azuriteConnString,
		},
		Metrics: metrics.Config{Enabled: true, Path: "/metrics"},
		Version: "0.1.0",
	}
}

func TestNew(t *testing.T) {
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer infra.Database.Connection().Close()

	if infra.Lifecycle == nil || infra.Logger == nil {
		t.Fatal("lifecycle and logger must be set")
	}
	if infra.Database == nil || infra.Storage == nil || infra.Metrics == nil {
		t.Fatal("database, storage, and metrics must be set")
	}

	gatherer, ok := infra.Metrics.Registerer().(prometheus.Gatherer)
	if !ok {
		t.Fatal("metrics registerer should also gather")
	}
	families, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	found := slices.ContainsFunc(families, func(f *dto.MetricFamily) bool {
		return f.GetName() == "go_sql_max_open_connections"
	})
	if !found {
		t.Error("database pool stats not registered")
	}
}

func TestNewInvalidStorageConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.ConnectionString = "not-a-connection-string"

	if _, err := infrastructure.New(cfg); err == nil {
		t.Fatal("expected error for invalid storage connection string")
	}
}
