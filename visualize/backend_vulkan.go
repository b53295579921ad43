//go:build !headless

package visualize

import (
	"fmt"
	"sync"

	vk "github.com/goki/vulkan"
)

// VulkanBackend accumulates the heatmap for Snapshot and, on Start,
// creates a Vulkan instance; it draws nothing through Vulkan. If Vulkan
// can't be initialized on this host, Start falls back to EbitenBackend's
// window, the same init-then-fall-back-to-software shape
// voodoo_vulkan.go's VulkanBackend.Init uses.
type VulkanBackend struct {
	mu          sync.Mutex
	h           *heatmap
	initialized bool
	instance    vk.Instance
	fallback    *EbitenBackend
}

func newVulkanBackend(size int) *VulkanBackend {
	return &VulkanBackend{h: newHeatmap(size), fallback: newEbitenBackend(size)}
}

func (b *VulkanBackend) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.initVulkan(); err != nil {
		fmt.Printf("visualize: vulkan initialization failed, using software backend: %v\n", err)
		b.initialized = false
		return b.fallback.Start()
	}
	b.initialized = true
	return nil
}

func (b *VulkanBackend) initVulkan() error {
	if err := vk.Init(); err != nil {
		return fmt.Errorf("vulkan init: %w", err)
	}
	appInfo := &vk.ApplicationInfo{
		SType:         vk.StructureTypeApplicationInfo,
		PApplicationName: "dramdiag\x00",
		ApiVersion:    vk.ApiVersion10,
	}
	createInfo := &vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}
	var instance vk.Instance
	if res := vk.CreateInstance(createInfo, nil, &instance); res != vk.Success {
		return fmt.Errorf("vkCreateInstance failed: %d", res)
	}
	b.instance = instance
	return nil
}

func (b *VulkanBackend) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return b.fallback.Stop()
	}
	vk.DestroyInstance(b.instance, nil)
	return nil
}

func (b *VulkanBackend) UpdateBlock(idx, width int, mismatches uint64) {
	b.h.update(idx, width, mismatches)
	if !b.initialized {
		b.fallback.UpdateBlock(idx, width, mismatches)
	}
}

func (b *VulkanBackend) Snapshot() ([]byte, int, int) {
	return b.h.rgba(4)
}
