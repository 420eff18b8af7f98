package main

import (
	"context"
	"log"
	"time"

	"github.com/shirou/gopsutil/process"
)

// monitorProcess periodically logs the CPU and memory usage of the simulator
// process. It stops silently once the process goes away.
func monitorProcess(ctx context.Context, pid int, interval time.Duration) {
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cpuPercent, err := proc.CPUPercent()
			if err != nil {
				return
			}

			memInfo, err := proc.MemoryInfo()
			if err != nil {
				return
			}

			log.Printf("gem5 pid=%d  CPU=%.1f%%  RSS=%dMiB",
				pid, cpuPercent, memInfo.RSS>>20)
		}
	}
}
