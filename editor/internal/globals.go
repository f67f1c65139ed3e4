package editor

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	Version           = "v0.1.0"
	DefaultConfigPath = "editor_config.json"
	DefaultSceneName  = "Untitled"
	AxisModel         = "Axis"

	maxConsoleLines = 500
	logoDuration    = 1500 * time.Millisecond
	logoTexture     = "logo"
	overlayFont     = "default"

	// A right click that moves the cursor further than this is a camera drag.
	clickSlop = 4.0
	// Where a placed object sits when it does not follow the cursor.
	placementDistance = 10.0
)

var (
	overlayColour  = mgl32.Vec4{1, 1, 1, 1}
	noticeColour   = mgl32.Vec4{0.9, 0.2, 0.2, 1}
	noticeBackdrop = mgl32.Vec4{0, 0, 0, 0.6}
)
