package systemreporter

// Report is the host snapshot logged after a slow pull.
type Report struct {
	Sockets    string `json:"sockets"`
	Interfaces string `json:"interfaces"`
	DiskUsage  string `json:"disk_usage"`
	IoStat     string `json:"io_stat"`
	VmStat     string `json:"vm_stat"`

	TopProcessesByCPU string `json:"top_processes_by_cpu"`
	Dmesg             string `json:"dmesg"`
}
