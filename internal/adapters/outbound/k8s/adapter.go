package k8s

import (
	"context"
	"fmt"
	"log/slog"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	metricsv "k8s.io/metrics/pkg/client/clientset/versioned"

	"github.com/sav-labs/dynamic-k8s-resources/internal/logic/scaler"
)

// Adapter implements all four scaler ports against the Kubernetes API:
// pod listing for allocations, metrics.k8s.io for usage, the pods/resize
// subresource for in-place mutation and pod annotations for cooldown records.
type Adapter struct {
	logger           *slog.Logger
	clientset        kubernetes.Interface
	metricsClientset metricsv.Interface
}

// New creates a new K8s adapter.
func New(
	logger *slog.Logger,
	clientset kubernetes.Interface,
	metricsClientset metricsv.Interface,
) *Adapter {
	return &Adapter{
		logger:           logger,
		clientset:        clientset,
		metricsClientset: metricsClientset,
	}
}

var (
	_ scaler.UsageSource      = (*Adapter)(nil)
	_ scaler.AllocationSource = (*Adapter)(nil)
	_ scaler.Mutator          = (*Adapter)(nil)
	_ scaler.CooldownStore    = (*Adapter)(nil)
)

// FetchAllocations lists pods matching the selector and returns the current
// memory request/limit per running container. The result doubles as the
// authoritative pod set for the tick.
func (a *Adapter) FetchAllocations(
	ctx context.Context,
	labelSelector string,
) (map[scaler.ContainerRef]scaler.AllocationState, error) {
	podList, err := a.clientset.CoreV1().Pods(metav1.NamespaceAll).List(
		ctx,
		metav1.ListOptions{
			LabelSelector: labelSelector,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("list pods: %w", err)
	}

	allocations := make(map[scaler.ContainerRef]scaler.AllocationState)

	for i := range podList.Items {
		appendPodAllocations(allocations, &podList.Items[i])
	}

	return allocations, nil
}

// FetchUsage lists pod metrics matching the selector and returns one usage
// sample per container. Containers without metrics are simply absent.
func (a *Adapter) FetchUsage(
	ctx context.Context,
	labelSelector string,
) (map[scaler.ContainerRef]scaler.UsageSample, error) {
	metricsList, err := a.metricsClientset.MetricsV1beta1().PodMetricses(metav1.NamespaceAll).List(
		ctx,
		metav1.ListOptions{
			LabelSelector: labelSelector,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("list pod metrics: %w", err)
	}

	usages := make(map[scaler.ContainerRef]scaler.UsageSample)

	for i := range metricsList.Items {
		appendPodUsage(ctx, a.logger, usages, &metricsList.Items[i])
	}

	return usages, nil
}
