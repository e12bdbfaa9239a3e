// This file is part of hdmicore.
//
// hdmicore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// hdmicore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with hdmicore.  If not, see <https://www.gnu.org/licenses/>.

package registers

import "math/bits"

// Bit returns a value with only bit n set.
func Bit(n int) uint32 {
	return 1 << n
}

// Field is a contiguous run of bits in a register.
type Field struct {
	Shift int
	Mask  uint32
}

// NewField creates a field covering bits hi to lo inclusive.
func NewField(hi, lo int) Field {
	w := hi - lo + 1
	return Field{
		Shift: lo,
		Mask:  uint32((uint64(1)<<w)-1) << lo,
	}
}

// Set returns v positioned in the field. Bits of v that do not fit in the
// field are discarded.
func (f Field) Set(v uint32) uint32 {
	return (v << f.Shift) & f.Mask
}

// Get returns the value of the field in the register value.
func (f Field) Get(reg uint32) uint32 {
	return (reg & f.Mask) >> f.Shift
}

// Width returns the number of bits in the field.
func (f Field) Width() int {
	return bits.OnesCount32(f.Mask)
}

// Max returns the largest value that fits in the field.
func (f Field) Max() uint32 {
	return f.Mask >> f.Shift
}

// Bit layouts shared by both hardware generations.
var (
	MCtlSWReset = Bit(2)
	MCtlEnable  = Bit(0)

	SWResetHDMI         = Bit(0)
	SWResetFormatDetect = Bit(1)

	VidCtlEnable            = Bit(31)
	VidCtlUnderflowEnable   = Bit(30)
	VidCtlFrameCounterReset = Bit(29)
	VidCtlVSyncLow          = Bit(28)
	VidCtlHSyncLow          = Bit(27)
	VidCtlClrSync           = Bit(24)
	VidCtlClrRGB            = Bit(23)
	VidCtlBlankPix          = Bit(18)

	HotplugConnected = Bit(0)

	ClockStopPixel = Bit(0)

	SchedulerManualFormat       = Bit(15)
	SchedulerIgnoreVSyncPredict = Bit(5)
	SchedulerVertAlwaysKeepout  = Bit(3)
	SchedulerHDMIActive         = Bit(1)
	SchedulerModeHDMI           = Bit(0)

	RAMPacketEnable = Bit(16)

	FIFOCtlRecenterDone   = Bit(14)
	FIFOCtlUseEmpty       = Bit(13)
	FIFOCtlOnVB           = Bit(7)
	FIFOCtlRecenter       = Bit(6)
	FIFOCtlFIFOReset      = Bit(5)
	FIFOCtlUsePLLLock     = Bit(4)
	FIFOCtlInvClkXfr      = Bit(3)
	FIFOCtlCaptureStart   = Bit(2)
	FIFOCtlMasterSlaveN   = Bit(0)
	FIFOCtlValidWriteMask = uint32(0xefff)

	CSCCtlOrder      = NewField(7, 5)
	CSCCtlOrderBGR   = uint32(5)
	CSCCtlMode       = NewField(3, 2)
	CSCCtlModeCustom = uint32(3)
	CSCCtlRGB2YCC    = Bit(1)
	CSCCtlEnable     = Bit(0)
	CSCCtlPadding    = NewField(5, 4)

	ScramblerEnable = Bit(0)

	MiscControlPixelRep = NewField(7, 4)

	MAICtlReset            = Bit(0)
	MAICtlErrorF           = Bit(1)
	MAICtlErrorE           = Bit(2)
	MAICtlEnable           = Bit(3)
	MAICtlChNum            = NewField(7, 4)
	MAICtlFlush            = Bit(9)
	MAICtlDlate            = Bit(15)
	MAICtlWholSmp          = Bit(17)
	MAICtlChAlign          = Bit(18)
	MAIFmtSampleRate       = NewField(15, 8)
	MAIFmtAudioFmt         = NewField(23, 16)
	MAISmpN                = NewField(31, 8)
	MAISmpM                = NewField(7, 0)
	MAIFormatPCM           = uint32(2)
	MAIFormatHBR           = uint32(200)
	MAIThrPanicHigh        = NewField(29, 24)
	MAIThrPanicLow         = NewField(21, 16)
	MAIThrDREQHigh         = NewField(13, 8)
	MAIThrDREQLow          = NewField(5, 0)
	MAIConfigFormatReverse = Bit(27)
	MAIConfigBitReverse    = Bit(26)
	MAIConfigChannelMask   = NewField(15, 0)

	AudioPacketZeroDataOnSampleFlat = Bit(29)
	AudioPacketZeroDataOnInactive   = Bit(24)
	AudioPacketBFrameIdentifier     = NewField(13, 10)
	AudioPacketCEAMask              = NewField(7, 0)
	CRPCfgExternalCTSEn             = Bit(24)
	CRPCfgN                         = NewField(19, 0)

	CECDivClkCnt  = NewField(24, 12)
	CECAddr       = NewField(31, 28)
	CECCPUMaskAll = uint32(0xffffffff)
	CECTxSWReset  = Bit(27)
	CECRxSWReset  = Bit(26)
	CECCntTo4700  = NewField(23, 16)
	CECCntTo4500  = NewField(15, 8)
	CPUCEC        = Bit(6)
)

// Bit layouts for the legacy (bcm2835) hardware generation.
var (
	LegacyHorzAVPos = Bit(14)
	LegacyHorzAHPos = Bit(13)
	LegacyHorzAHAP  = NewField(12, 0)

	LegacyHorzBHBP = NewField(29, 20)
	LegacyHorzBHSP = NewField(19, 10)
	LegacyHorzBHFP = NewField(9, 0)

	LegacyVertAVSP = NewField(24, 20)
	LegacyVertAVFP = NewField(19, 13)
	LegacyVertAVAL = NewField(12, 0)

	LegacyVertBVSPO = NewField(21, 9)
	LegacyVertBVBP  = NewField(8, 0)

	LegacyPhyResetAll     = uint32(0xf) << 16
	LegacyPhyRngPowerdown = Bit(25)
)

// Bit layouts for the extended (bcm2711) hardware generation.
var (
	ExtHorzAVPos = Bit(15)
	ExtHorzAHPos = Bit(14)
	ExtHorzAHFP  = NewField(28, 16)
	ExtHorzAHAP  = NewField(13, 0)

	ExtHorzBHBP = NewField(25, 16)
	ExtHorzBHSP = NewField(9, 0)

	ExtVertAVSP = NewField(28, 24)
	ExtVertAVFP = NewField(22, 16)
	ExtVertAVAL = NewField(12, 0)

	ExtVertBVSPO = NewField(29, 16)
	ExtVertBVBP  = NewField(8, 0)

	ExtDeepColorInitPackPhase = NewField(11, 8)
	ExtDeepColorColorDepth    = NewField(3, 0)
	ExtGCPSubpacketByte1      = NewField(15, 8)
	ExtGCPEnable              = Bit(31)

	ExtCSCCtlUse444To422    = Bit(6)
	ExtCSCCtlFilterMode     = NewField(5, 4)
	ExtCSCCtlFilterStandard = uint32(3)
	ExtCSCCtlRngSuppression = Bit(3)
	ExtCSCCtlEnable         = Bit(2)
	ExtCSCCtlMode           = NewField(1, 0)

	ExtCSCChannelCtlRemap       = NewField(7, 6)
	ExtCSCChannelCtlRemapLegacy = uint32(2)
	ExtVECInterfaceSel422       = NewField(3, 2)
	ExtVECInterfaceSel422Legacy = uint32(2)

	ExtPhyResetCtlPLL   = Bit(0)
	ExtPhyResetCtlLanes = NewField(7, 4)
	ExtPhyRngPowerdown  = Bit(4)
	ExtPhyPLLLocked     = Bit(0)

	ExtLaneSwap0 = NewField(2, 0)
	ExtLaneSwap1 = NewField(6, 4)
	ExtLaneSwap2 = NewField(10, 8)
	ExtLaneSwapC = NewField(14, 12)
)
