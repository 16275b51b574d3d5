package sysinfo

import (
	"os"
	"runtime"

	"github.com/google/uuid"
)

// Info is the read-only environment report shown next to the form.
type Info struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Kernel    string `json:"kernel"`
	GoVersion string `json:"go_version"`
	Hostname  string `json:"hostname"`
	User      string `json:"user"`
	Home      string `json:"home"`
	SessionID string `json:"session_id"`
}

// Reporter caches the parts of Info that cannot change while the process runs.
type Reporter struct {
	sessionID string
	getenv    func(string) string
}

func NewReporter() *Reporter {
	return &Reporter{sessionID: uuid.NewString(), getenv: os.Getenv}
}

func (r *Reporter) SessionID() string { return r.sessionID }

func (r *Reporter) Collect() Info {
	host, _ := os.Hostname()
	return Info{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Kernel:    kernelRelease(),
		GoVersion: runtime.Version(),
		Hostname:  host,
		User:      orUnknown(r.getenv("USER")),
		Home:      orUnknown(r.getenv("HOME")),
		SessionID: r.sessionID,
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
