//go:build windows

package handler

// Disk and CPU probes are not implemented on Windows; the service runs in
// Linux containers.
func getDiskStats(path string) diskStats { return diskStats{} }

func getCPUUsage() float64 { return 0 }
