package parameter

// Terminal Projection
const (
	// UnitsPerDot is the logical unit span of one braille dot
	// A cell is 2x4 dots, so 80x24 cells map to 640x384 units at the default
	UnitsPerDot = 4.0

	// TerminalGain brightens terminal cells, low alpha strokes are near invisible on a cell grid
	TerminalGain = 2.5

	// TerminalBackground is the cell background color
	TerminalBackground = "#000000"

	// DotsPerCellX/Y is the braille sub-cell resolution
	DotsPerCellX = 2
	DotsPerCellY = 4
)

// Snapshot Defaults
const (
	SnapshotWidth       = 1280
	SnapshotHeight      = 720
	SnapshotFrames      = 120
	SnapshotSupersample = 2
	SnapshotFormat      = "webp"
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "particle-field.log"

	// MaxLogSize triggers rotation of an existing log on startup (10 MiB)
	MaxLogSize = 10 * 1024 * 1024
)
