package k8s

import (
	"context"
	"log/slog"

	corev1 "k8s.io/api/core/v1"
	metricsv1beta1 "k8s.io/metrics/pkg/apis/metrics/v1beta1"

	"github.com/sav-labs/dynamic-k8s-resources/internal/logic/scaler"
)

// appendPodAllocations adds one AllocationState per container of the pod.
// Pods that are not running, or are already terminating, cannot be resized in
// place and are excluded from the tick.
func appendPodAllocations(
	out map[scaler.ContainerRef]scaler.AllocationState,
	pod *corev1.Pod,
) {
	if pod.Status.Phase != corev1.PodRunning || pod.DeletionTimestamp != nil {
		return
	}

	for i := range pod.Spec.Containers {
		container := &pod.Spec.Containers[i]

		ref := scaler.ContainerRef{
			Namespace: pod.Namespace,
			Pod:       pod.Name,
			Container: container.Name,
		}

		alloc := scaler.AllocationState{Ref: ref}

		if request, ok := container.Resources.Requests[corev1.ResourceMemory]; ok {
			alloc.MemoryRequestBytes = request.Value()
		}

		if limit, ok := container.Resources.Limits[corev1.ResourceMemory]; ok {
			alloc.MemoryLimitBytes = limit.Value()
		}

		out[ref] = alloc
	}
}

// appendPodUsage adds one UsageSample per container of the pod metrics item.
func appendPodUsage(
	ctx context.Context,
	logger *slog.Logger,
	out map[scaler.ContainerRef]scaler.UsageSample,
	podMetrics *metricsv1beta1.PodMetrics,
) {
	for i := range podMetrics.Containers {
		containerMetrics := &podMetrics.Containers[i]

		memoryUsage := containerMetrics.Usage.Memory()
		if memoryUsage == nil {
			logger.WarnContext(ctx, "container memory usage is nil, skipping",
				"pod", podMetrics.Name,
				"namespace", podMetrics.Namespace,
				"container", containerMetrics.Name,
			)

			continue
		}

		ref := scaler.ContainerRef{
			Namespace: podMetrics.Namespace,
			Pod:       podMetrics.Name,
			Container: containerMetrics.Name,
		}

		out[ref] = scaler.UsageSample{
			Ref:         ref,
			MemoryBytes: memoryUsage.Value(),
			ObservedAt:  podMetrics.Timestamp.Time,
		}
	}
}
