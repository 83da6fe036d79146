package parameter

import "time"

// Frame Loop
const (
	// FrameRate is the default display refresh rate the loop is paced to
	FrameRate = 60

	// FrameUpdateInterval is the frame interval at FrameRate (~60 FPS), the scheduler default
	FrameUpdateInterval = time.Second / FrameRate

	// MinFrameRate/MaxFrameRate bound the configurable refresh rate
	MinFrameRate = 1
	MaxFrameRate = 240
)
