package server

import (
	"net/http"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/adamcubed/wifibox/pkg/httpx"
)

// handleSystemStatus feeds the UI's status panel.
func (s *Server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	out := map[string]any{}

	if info, err := host.InfoWithContext(r.Context()); err == nil {
		out["hostname"] = info.Hostname
		out["uptimeSec"] = info.Uptime
		out["platform"] = info.Platform
		out["kernel"] = info.KernelVersion
	}
	if avg, err := load.AvgWithContext(r.Context()); err == nil {
		out["load1"] = avg.Load1
		out["load5"] = avg.Load5
		out["load15"] = avg.Load15
	}
	if vm, err := mem.VirtualMemoryWithContext(r.Context()); err == nil {
		out["memoryTotal"] = vm.Total
		out["memoryUsedPercent"] = vm.UsedPercent
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}
