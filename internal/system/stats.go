package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Snapshot describes the machine the render runs on
type Snapshot struct {
	LogicalCPUs     int
	TotalMemory     uint64
	AvailableMemory uint64
	UsedPercent     float64
}

// TakeSnapshot reads CPU and memory figures. Missing figures stay zero.
func TakeSnapshot() Snapshot {
	s := Snapshot{LogicalCPUs: runtime.NumCPU()}

	if n, err := cpu.Counts(true); err == nil && n > 0 {
		s.LogicalCPUs = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.TotalMemory = vm.Total
		s.AvailableMemory = vm.Available
		s.UsedPercent = vm.UsedPercent
	}
	return s
}

// FrameBatch ограничивает число одновременно удерживаемых кадров:
// не больше workers*2 и не больше четверти свободной памяти
func (s Snapshot) FrameBatch(workers int, frameBytes uint64) int {
	batch := workers * 2
	if batch < 1 {
		batch = 1
	}
	if s.AvailableMemory == 0 || frameBytes == 0 {
		return batch
	}

	limit := int(s.AvailableMemory / 4 / frameBytes)
	if limit < 1 {
		limit = 1
	}
	if batch > limit {
		batch = limit
	}
	return batch
}
