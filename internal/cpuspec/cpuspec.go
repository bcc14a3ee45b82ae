// Package cpuspec sizes dataloader worker pools from the host CPU.
package cpuspec

import (
	"regexp"
	"runtime"
	"strings"

	"github.com/klauspost/cpuid/v2"
)

// CPUSpec describes the host CPU as far as worker sizing is concerned.
type CPUSpec struct {
	BrandName        string
	PerformanceCores int
}

// GetCPUSpec detects the host CPU brand and its performance core count.
func GetCPUSpec() CPUSpec {
	brandName := cpuid.CPU.BrandName
	return CPUSpec{
		BrandName:        brandName,
		PerformanceCores: determinePerformanceCores(brandName),
	}
}

// GetOptimalWorkerCount returns the recommended number of dataloader
// workers. On hybrid architectures only performance cores are counted,
// capped by the CPUs actually available to the process.
func (c CPUSpec) GetOptimalWorkerCount() int {
	availableCPUs := runtime.NumCPU()

	if c.PerformanceCores > 0 {
		if c.PerformanceCores > availableCPUs {
			return availableCPUs
		}
		return c.PerformanceCores
	}

	if logical := cpuid.CPU.LogicalCores; logical > 0 && logical < availableCPUs {
		return logical
	}
	return availableCPUs
}

var (
	intelHybridRegex = regexp.MustCompile(`intel.*core.*i[3579]-(1[2-4])\d{2,3}`)
	appleRegex       = regexp.MustCompile(`(?i)apple\s+(m[1-4]\s*(pro|max|ultra)?)`)
)

// determinePerformanceCores maps known hybrid CPU families to their
// performance core counts. Returns 0 when the brand is not recognized as
// hybrid, which makes the caller fall back to logical cores.
func determinePerformanceCores(brandName string) int {
	brandName = strings.ToLower(brandName)

	// Intel 12th-14th gen hybrid parts: i9/i7 carry 8 P-cores, i5 six,
	// i3 four.
	if intelHybridRegex.MatchString(brandName) {
		switch {
		case strings.Contains(brandName, "i9"), strings.Contains(brandName, "i7"):
			return 8
		case strings.Contains(brandName, "i5"):
			return 6
		case strings.Contains(brandName, "i3"):
			return 4
		}
	}

	if matches := appleRegex.FindStringSubmatch(brandName); len(matches) > 1 {
		chip := strings.ToLower(strings.TrimSpace(matches[1]))
		switch {
		case strings.Contains(chip, "ultra"):
			return 16
		case strings.Contains(chip, "max"), strings.Contains(chip, "pro"):
			return 8
		default:
			return 4
		}
	}

	return 0
}
