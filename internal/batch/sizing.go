package batch

import (
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/eerla/pybenders-sub000/internal/config"
)

const (
	// jobMemoryBudget is the working-set estimate for one ffmpeg render:
	// decoded stills, filter graph frames, and encoder lookahead.
	jobMemoryBudget = 1536 << 20

	maxAutoWorkers  = 8
	fallbackWorkers = 2
)

// workerCount resolves the pool size. An explicit workers setting wins;
// zero sizes the pool from available memory. The pool never exceeds the
// job count.
func workerCount(cfg *config.Config, jobs int) int {
	n := cfg.Render.Workers
	if n <= 0 {
		n = autoWorkerCount()
	}
	if jobs > 0 && n > jobs {
		n = jobs
	}
	if n < 1 {
		n = 1
	}
	return n
}

func autoWorkerCount() int {
	vm, err := mem.VirtualMemory()
	if err != nil || vm == nil {
		return fallbackWorkers
	}
	n := int(vm.Available / jobMemoryBudget)
	if n < 1 {
		return 1
	}
	if n > maxAutoWorkers {
		return maxAutoWorkers
	}
	return n
}
