// Package sysmon samples host CPU and memory usage and exposes the samples
// as Prometheus gauges next to the roll metrics.
package sysmon

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// Collector is a prometheus.Collector that samples the host on every scrape.
type Collector struct {
	sample  func() Stats
	cpuDesc *prometheus.Desc
	memDesc *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector backed by Sample.
func NewCollector() *Collector {
	return newCollector(Sample)
}

func newCollector(sample func() Stats) *Collector {
	return &Collector{
		sample: sample,
		cpuDesc: prometheus.NewDesc("d100_host_cpu_percent",
			"System-wide CPU usage since the previous scrape.", nil, nil),
		memDesc: prometheus.NewDesc("d100_host_memory_percent",
			"System-wide memory in use.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.cpuDesc
	ch <- c.memDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.sample()
	ch <- prometheus.MustNewConstMetric(c.cpuDesc, prometheus.GaugeValue, s.CPUPercent)
	ch <- prometheus.MustNewConstMetric(c.memDesc, prometheus.GaugeValue, s.MemPercent)
}
