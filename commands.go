package st7735r

import "time"

// Controller opcodes.
const (
	cmdSWRESET = 0x01 // Software reset
	cmdRDDID   = 0x04 // Read display ID
	cmdSLPIN   = 0x10 // Sleep in
	cmdSLPOUT  = 0x11 // Sleep out
	cmdINVOFF  = 0x20 // Display inversion off
	cmdINVON   = 0x21 // Display inversion on
	cmdDISPOFF = 0x28 // Display off
	cmdDISPON  = 0x29 // Display on
	cmdCASET   = 0x2A // Column address set
	cmdRASET   = 0x2B // Row address set
	cmdRAMWR   = 0x2C // Memory write
	cmdMADCTL  = 0x36 // Memory data access control
	cmdCOLMOD  = 0x3A // Interface pixel format
	cmdFRMCTR1 = 0xB1 // Frame rate, normal mode
	cmdFRMCTR2 = 0xB2 // Frame rate, idle mode
	cmdFRMCTR3 = 0xB3 // Frame rate, partial mode
	cmdINVCTR  = 0xB4 // Inversion control
	cmdPWCTR1  = 0xC0
	cmdPWCTR2  = 0xC1
	cmdPWCTR3  = 0xC2
	cmdPWCTR4  = 0xC3
	cmdPWCTR5  = 0xC4
	cmdVMCTR1  = 0xC5
	cmdGMCTRP1 = 0xE0 // Positive gamma
	cmdGMCTRN1 = 0xE1 // Negative gamma
	cmdEXTCTRL = 0xF0 // Extension command control
	cmdPWRSAVE = 0xF6 // Power saving, disabled
)

// colmod16 selects 16 bits per pixel.
const colmod16 = 0x05

const (
	sleepDelay = 20 * time.Millisecond
	resetDelay = 120 * time.Millisecond
)

// MemoryAccess is the MADCTL register: scan direction and colour order.
type MemoryAccess byte

// MADCTL bits.
const (
	MirrorY  MemoryAccess = 0x80 // MY, row address order
	MirrorX  MemoryAccess = 0x40 // MX, column address order
	SwapXY   MemoryAccess = 0x20 // MV, row/column exchange
	ScanUp   MemoryAccess = 0x10 // ML, vertical refresh order
	BGR      MemoryAccess = 0x08 // RGB/BGR order
	RefreshL MemoryAccess = 0x04 // MH, horizontal refresh order

	// DefaultAccess mirrors both axes with BGR order, the orientation of the
	// common 128x160 modules.
	DefaultAccess = MirrorY | MirrorX | BGR
)

// command is one entry of an initialization script.
type command struct {
	cmd   byte
	data  []byte
	delay time.Duration
}

// initScript returns the power-on register setup. access is written to
// MADCTL.
func initScript(access MemoryAccess) []command {
	return []command{
		{cmd: cmdFRMCTR1, data: []byte{0x02, 0x35, 0x36}},
		{cmd: cmdFRMCTR2, data: []byte{0x02, 0x35, 0x36}},
		{cmd: cmdFRMCTR3, data: []byte{0x02, 0x35, 0x36, 0x02, 0x35, 0x36}},
		{cmd: cmdINVCTR, data: []byte{0x03}},
		{cmd: cmdPWCTR1, data: []byte{0xA2, 0x02, 0x84}},
		{cmd: cmdPWCTR2, data: []byte{0xC5}},
		{cmd: cmdPWCTR3, data: []byte{0x0D, 0x00}},
		{cmd: cmdPWCTR4, data: []byte{0x8A, 0x2A}},
		{cmd: cmdPWCTR5, data: []byte{0x8A, 0xEE}},
		{cmd: cmdVMCTR1, data: []byte{0x03}},
		{cmd: cmdGMCTRP1, data: []byte{
			0x12, 0x1C, 0x10, 0x18, 0x33, 0x2C, 0x25, 0x28,
			0x28, 0x27, 0x2F, 0x3C, 0x00, 0x03, 0x03, 0x10,
		}},
		{cmd: cmdGMCTRN1, data: []byte{
			0x12, 0x1D, 0x10, 0x18, 0x2D, 0x28, 0x23, 0x28,
			0x28, 0x26, 0x2F, 0x3B, 0x00, 0x03, 0x03, 0x10,
		}},
		{cmd: cmdMADCTL, data: []byte{byte(access)}},
		{cmd: cmdCOLMOD, data: []byte{colmod16}},
		{cmd: cmdDISPON},
		{cmd: cmdEXTCTRL, data: []byte{0x01}},
		{cmd: cmdPWRSAVE, data: []byte{0x00}},
	}
}
