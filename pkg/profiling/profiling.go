package profiling

import (
	"fmt"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"

	"github.com/lessonforge/lessonforge-api/config"
	"github.com/lessonforge/lessonforge-api/pkg/logger"
)

// defaultProfileTypes is the full set collected when PYROSCOPE_SAMPLE_TYPES
// is left empty.
var defaultProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileGoroutines,
	pyroscope.ProfileMutexCount,
	pyroscope.ProfileMutexDuration,
	pyroscope.ProfileBlockCount,
	pyroscope.ProfileBlockDuration,
}

// sampleTypeAliases maps config keywords to the profile types they enable.
// "mutex" and "block" each expand to a count/duration pair.
var sampleTypeAliases = map[string][]pyroscope.ProfileType{
	"cpu":           {pyroscope.ProfileCPU},
	"alloc_space":   {pyroscope.ProfileAllocSpace},
	"alloc_objects": {pyroscope.ProfileAllocObjects},
	"goroutines":    {pyroscope.ProfileGoroutines},
	"mutex":         {pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration},
	"block":         {pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration},
}

// InitProfiler starts the Pyroscope continuous profiler and returns a stop
// function. When profiling is disabled the stop function is a no-op.
func InitProfiler(cfg config.ProfilingConfig, serviceName, namespace, version, instanceID, environment string) (func(), error) {
	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled")
		return func() {}, nil
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("profiling endpoint is required when profiling is enabled")
	}

	types, err := parseProfileTypes(cfg.SampleTypes)
	if err != nil {
		return nil, err
	}

	interval := cfg.UploadIntervalSeconds
	if interval <= 0 {
		interval = 15
	}

	appName := buildApplicationName(cfg.AppName, serviceName, namespace, environment, version, instanceID)

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: appName,
		ServerAddress:   endpoint,
		UploadRate:      time.Duration(interval) * time.Second,
		ProfileTypes:    types,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start pyroscope profiler: %w", err)
	}

	logger.Info("Continuous profiling initialized",
		zap.String("application_name", appName),
		zap.String("endpoint", endpoint),
		zap.Int("profile_types", len(types)),
		zap.Int("upload_interval_seconds", interval),
	)

	return func() {
		if err := profiler.Stop(); err != nil {
			logger.Error("Failed to stop profiler", zap.Error(err))
		}
	}, nil
}

// parseProfileTypes expands the comma-separated PYROSCOPE_SAMPLE_TYPES list,
// deduplicating while preserving input order. Empty means everything.
func parseProfileTypes(value string) ([]pyroscope.ProfileType, error) {
	if strings.TrimSpace(value) == "" {
		return defaultProfileTypes, nil
	}

	var (
		types []pyroscope.ProfileType
		seen  = make(map[pyroscope.ProfileType]bool, len(defaultProfileTypes))
	)
	for _, raw := range strings.Split(value, ",") {
		alias := strings.ToLower(strings.TrimSpace(raw))
		expanded, ok := sampleTypeAliases[alias]
		if !ok {
			return nil, fmt.Errorf("unsupported PYROSCOPE_SAMPLE_TYPES value: %q", alias)
		}
		for _, t := range expanded {
			if seen[t] {
				continue
			}
			seen[t] = true
			types = append(types, t)
		}
	}

	if len(types) == 0 {
		return defaultProfileTypes, nil
	}
	return types, nil
}

// buildApplicationName assembles the Pyroscope application name with the
// standard service labels, e.g. "lessonforge-api{service_name=...,...}".
func buildApplicationName(base, serviceName, namespace, environment, version, instanceID string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = "lessonforge-api"
	}

	var b strings.Builder
	b.WriteString(base)
	b.WriteByte('{')
	for i, label := range [][2]string{
		{"service_name", serviceName},
		{"namespace", namespace},
		{"environment", environment},
		{"service_version", version},
		{"instance", instanceID},
	} {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(label[0])
		b.WriteByte('=')
		b.WriteString(label[1])
	}
	b.WriteByte('}')
	return b.String()
}
