package middleware

import (
	"os"
	"testing"

	"github.com/MNabeel-Git/RecruitmentManagementSystem/pkg/config"
	"github.com/MNabeel-Git/RecruitmentManagementSystem/prometheus"
)

func TestMain(m *testing.M) {
	prometheus.InitMetrics(&config.Config{
		Metrics: config.MetricsConfig{Prefix: "middleware_test"},
	})
	os.Exit(m.Run())
}
