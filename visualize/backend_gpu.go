//go:build !headless

package visualize

// NewBackend returns the Vulkan-backed heatmap renderer for a size-byte
// buffer; VulkanBackend itself falls back to EbitenBackend if no Vulkan
// driver is present, so this is always safe to call.
func NewBackend(size int) (Backend, error) {
	return newVulkanBackend(size), nil
}
