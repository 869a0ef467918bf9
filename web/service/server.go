package service

import (
	"runtime"
	"time"

	"secondplan/config"
	"secondplan/logger"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// Status represents the host and application state shown on the admin
// system card.
type Status struct {
	T   time.Time `json:"-"`
	App struct {
		Name    string `json:"name"`
		Version string `json:"version"`
		Env     string `json:"env"`
		Uptime  string `json:"uptime"`
	} `json:"app"`
	Cpu        float64 `json:"cpu"`
	CpuCores   int     `json:"cpuCores"`
	LogicalPro int     `json:"logicalPro"`
	Mem        struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	Disk struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"disk"`
	HostUptime uint64    `json:"hostUptime"`
	Loads      []float64 `json:"loads"`
}

// ServerService collects host metrics for the admin status endpoint.
type ServerService struct {
	startTime time.Time
}

func NewServerService() *ServerService {
	return &ServerService{startTime: time.Now()}
}

// GetStatus gathers a point-in-time snapshot. Individual probe failures are
// logged and leave their field zeroed rather than failing the whole call.
func (s *ServerService) GetStatus() *Status {
	now := time.Now()
	status := &Status{T: now}

	status.App.Name = config.GetName()
	status.App.Version = config.GetVersion()
	status.App.Env = config.GetEnvironment()
	status.App.Uptime = now.Sub(s.startTime).Round(time.Second).String()

	percents, err := cpu.Percent(0, false)
	if err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}

	status.CpuCores, err = cpu.Counts(false)
	if err != nil {
		logger.Warning("get cpu cores count failed:", err)
	}
	status.LogicalPro = runtime.NumCPU()

	upTime, err := host.Uptime()
	if err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.HostUptime = upTime
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	diskInfo, err := disk.Usage("/")
	if err != nil {
		logger.Warning("get disk usage failed:", err)
	} else {
		status.Disk.Current = diskInfo.Used
		status.Disk.Total = diskInfo.Total
	}

	avgState, err := load.Avg()
	if err != nil {
		logger.Warning("get load avg failed:", err)
	} else {
		status.Loads = []float64{avgState.Load1, avgState.Load5, avgState.Load15}
	}

	return status
}
