//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package sysinfo

func kernelRelease() string { return "unknown" }
