package k8s

import (
	"context"
	"encoding/json"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	"github.com/sav-labs/dynamic-k8s-resources/internal/logic/scaler"
)

// resizeSubresource is the pods subresource for in-place vertical scaling;
// requires the InPlacePodVerticalScaling feature gate on the cluster.
const resizeSubresource = "resize"

// ApplyResize patches the container's memory request and limit in place via
// the pods/resize subresource. No retry is performed here: a conflict or
// transient failure is surfaced to the caller and the next tick's fresh read
// supersedes it.
func (a *Adapter) ApplyResize(
	ctx context.Context,
	ref scaler.ContainerRef,
	newRequestBytes,
	newLimitBytes int64,
) error {
	patchBytes, err := buildResizePatch(ref.Container, newRequestBytes, newLimitBytes)
	if err != nil {
		return fmt.Errorf("build resize patch: %w", err)
	}

	_, err = a.clientset.CoreV1().Pods(ref.Namespace).Patch(
		ctx,
		ref.Pod,
		types.StrategicMergePatchType,
		patchBytes,
		metav1.PatchOptions{},
		resizeSubresource,
	)
	if err != nil {
		switch {
		case apierrors.IsNotFound(err):
			return fmt.Errorf("resize pod: %w", errPodNotFound)
		case apierrors.IsConflict(err):
			return fmt.Errorf("resize pod: %w", errConflict)
		}

		return fmt.Errorf("resize pod: %w", err)
	}

	return nil
}

// CheckResizeSupport verifies the cluster exposes the pods/resize subresource,
// failing fast at startup with a clear error when the feature gate is off.
func (a *Adapter) CheckResizeSupport(_ context.Context) error {
	resources, err := a.clientset.Discovery().ServerResourcesForGroupVersion("v1")
	if err != nil {
		return fmt.Errorf("discover core/v1 resources: %w", err)
	}

	for i := range resources.APIResources {
		if resources.APIResources[i].Name == "pods/"+resizeSubresource {
			return nil
		}
	}

	return fmt.Errorf("cluster does not advertise pods/%s subresource", resizeSubresource)
}

func buildResizePatch(containerName string, newRequestBytes, newLimitBytes int64) ([]byte, error) {
	requestQty := resource.NewQuantity(newRequestBytes, resource.BinarySI)
	limitQty := resource.NewQuantity(newLimitBytes, resource.BinarySI)

	patch := map[string]any{
		"spec": map[string]any{
			"containers": []map[string]any{
				{
					"name": containerName,
					"resources": map[string]any{
						"requests": map[string]any{
							"memory": requestQty.String(),
						},
						"limits": map[string]any{
							"memory": limitQty.String(),
						},
					},
				},
			},
		},
	}

	patchBytes, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("marshal resize patch: %w", err)
	}

	return patchBytes, nil
}
