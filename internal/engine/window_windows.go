//go:build windows

package engine

import (
	"syscall"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var (
	dwmapi                    = syscall.NewLazyDLL("dwmapi.dll")
	procDwmSetWindowAttribute = dwmapi.NewProc("DwmSetWindowAttribute")
)

const (
	DWMWA_USE_IMMERSIVE_DARK_MODE = 20
	DWMWA_BORDER_COLOR            = 34
	DWMWA_CAPTION_COLOR           = 35
)

func applyDarkTitleBar(window *glfw.Window) {
	hwnd := window.GetWin32Window()
	if hwnd == nil {
		return
	}

	attrs := []struct {
		attr  uintptr
		value uint32
	}{
		{DWMWA_USE_IMMERSIVE_DARK_MODE, 1},
		{DWMWA_BORDER_COLOR, 0x00000000},
		{DWMWA_CAPTION_COLOR, 0x00202020},
	}
	for _, a := range attrs {
		value := a.value
		procDwmSetWindowAttribute.Call(
			uintptr(unsafe.Pointer(hwnd)),
			a.attr,
			uintptr(unsafe.Pointer(&value)),
			unsafe.Sizeof(value),
		)
	}
}
