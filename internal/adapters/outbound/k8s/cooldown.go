package k8s

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	"github.com/sav-labs/dynamic-k8s-resources/internal/logic/scaler"
)

// CooldownAnnotationKey is the pod annotation holding the last-resize
// timestamp in RFC3339 UTC. Attached to the pod itself so it survives
// controller restarts and is visible cluster-wide.
const CooldownAnnotationKey = "resource-manager/last-update"

// GetLastResize reads the cooldown annotation from the pod. An absent
// annotation means the pod was never resized; a malformed timestamp is
// treated the same way rather than blocking scaling forever.
func (a *Adapter) GetLastResize(
	ctx context.Context,
	pod scaler.PodRef,
) (*time.Time, error) {
	obj, err := a.clientset.CoreV1().Pods(pod.Namespace).Get(ctx, pod.Name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, fmt.Errorf("get pod: %w", errPodNotFound)
		}

		return nil, fmt.Errorf("get pod: %w", err)
	}

	value, ok := obj.Annotations[CooldownAnnotationKey]
	if !ok {
		return nil, nil
	}

	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		a.logger.WarnContext(ctx, "invalid cooldown annotation, treating as never resized",
			"pod", pod.Name,
			"namespace", pod.Namespace,
			"value", value,
		)

		return nil, nil
	}

	return &at, nil
}

// SetLastResize writes the cooldown annotation with a merge patch. The API
// server's optimistic concurrency is the only lock; a conflicting external
// update surfaces as an error and is handled by the caller.
func (a *Adapter) SetLastResize(
	ctx context.Context,
	pod scaler.PodRef,
	at time.Time,
) error {
	patch := map[string]any{
		"metadata": map[string]any{
			"annotations": map[string]any{
				CooldownAnnotationKey: at.UTC().Format(time.RFC3339),
			},
		},
	}

	patchBytes, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("marshal annotation patch: %w", err)
	}

	_, err = a.clientset.CoreV1().Pods(pod.Namespace).Patch(
		ctx,
		pod.Name,
		types.MergePatchType,
		patchBytes,
		metav1.PatchOptions{},
	)
	if err != nil {
		if apierrors.IsNotFound(err) {
			return fmt.Errorf("patch pod annotation: %w", errPodNotFound)
		}

		return fmt.Errorf("patch pod annotation: %w", err)
	}

	return nil
}
