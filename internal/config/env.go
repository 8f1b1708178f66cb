package config

import "time"

// Env key constants. All controller configuration env vars use the
// RESOURCE_MANAGER_ prefix; duration values support explicit units
// (e.g. 5m, 40s) and fall back to plain seconds (e.g. 300).

// Path to kubeconfig file. If unset, KUBECONFIG is used as fallback.
const envKeyKubeConfig = "RESOURCE_MANAGER_KUBECONFIG"

// Kubernetes API server URL. If unset, KUBERNETES_MASTER is used as fallback.
const envKeyKubeMaster = "RESOURCE_MANAGER_KUBE_MASTER"

// Disable TLS certificate verification for the API server connection.
const envKeyInsecureSkipTLSVerify = "RESOURCE_MANAGER_INSECURE_SKIP_TLS_VERIFY"

// Log level: debug, info, warn, error.
const envKeyLogLevel = "RESOURCE_MANAGER_LOG_LEVEL"

// Log format: json or text.
const envKeyLogFormat = "RESOURCE_MANAGER_LOG_FORMAT"

// Port for health/readiness HTTP server.
const envKeyHTTPPort = "RESOURCE_MANAGER_HTTP_PORT"

// Port for Prometheus metrics (GET /metrics).
const envKeyMetricsPort = "RESOURCE_MANAGER_METRICS_PORT"

// Label selector restricting which pods are managed (empty selects all pods).
const envKeyPodLabelSelector = "RESOURCE_MANAGER_POD_LABEL_SELECTOR"

// Poll interval between control loop ticks, measured from tick completion.
const (
	envKeyInterval = "RESOURCE_MANAGER_INTERVAL"
	envMinInterval = 5 * time.Second
)

// Minimum time after any resize before the next scale-down of the same pod.
const envKeyCooldown = "RESOURCE_MANAGER_COOLDOWN"

// Number of pods processed concurrently within one tick.
const envKeyConcurrency = "RESOURCE_MANAGER_CONCURRENCY"

// Usage/request ratio at or above which a container is scaled up.
const envKeyScaleUpThreshold = "RESOURCE_MANAGER_SCALE_UP_THRESHOLD"

// New request is at least usage times this multiplier on scale-up.
const envKeyScaleUpUsageMultiplier = "RESOURCE_MANAGER_SCALE_UP_USAGE_MULTIPLIER"

// New request is at least the current request times this factor on scale-up.
const envKeyScaleUpMinGrowth = "RESOURCE_MANAGER_SCALE_UP_MIN_GROWTH"

// Usage/request ratio at or below which a container may be scaled down.
const envKeyScaleDownThreshold = "RESOURCE_MANAGER_SCALE_DOWN_THRESHOLD"

// New request is usage times this multiplier on scale-down.
const envKeyScaleDownUsageMultiplier = "RESOURCE_MANAGER_SCALE_DOWN_USAGE_MULTIPLIER"

// Minimum relative reduction of the current request for a scale-down to apply.
const envKeyScaleDownMinDiff = "RESOURCE_MANAGER_SCALE_DOWN_MIN_DIFF"

// Floor for any computed memory request, as a Kubernetes quantity (e.g. 100Mi).
const envKeyMinRequestMemory = "RESOURCE_MANAGER_MIN_REQUEST_MEMORY"

// Standard k8s env keys used as fallback when RESOURCE_MANAGER_* are unset.
const (
	envKeyKubeConfigFallback = "KUBECONFIG"
	envKeyKubeMasterFallback = "KUBERNETES_MASTER"
)
