package cpu

// Debug trace categories (§4.12), matched against CPU.DebugMask.
const (
	debugCmd = 1 << iota
	debugInst
	debugData
	debugIO
)
