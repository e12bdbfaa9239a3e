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

import (
	"fmt"
)

// Register names a hardware register of the HDMI block. The HDMI core never
// deals with addresses. The mapping of a name to an address is the concern
// of the Bus implementation.
type Register string

// Offset returns the name of a word in a register window. It is used for the
// packet RAM where each infoframe slot is a run of consecutive words.
func (r Register) Offset(n int) Register {
	return Register(fmt.Sprintf("%s+%#04x", r, n*4))
}

// List of registers used by the HDMI core. Not every register exists on every
// hardware variant.
const (
	// core control
	SWResetControl Register = "HDMI_SW_RESET_CONTROL"
	MCtl           Register = "HDMI_M_CTL"
	VidCtl         Register = "HDMI_VID_CTL"
	Hotplug        Register = "HDMI_HOTPLUG"
	ClockStop      Register = "HDMI_CLOCK_STOP"
	DVPCtl         Register = "HDMI_DVP_CTL"
	MiscControl    Register = "HDMI_MISC_CONTROL"
	FIFOCtl        Register = "HDMI_FIFO_CTL"

	// timing
	HorzA  Register = "HDMI_HORZA"
	HorzB  Register = "HDMI_HORZB"
	VertA0 Register = "HDMI_VERTA0"
	VertA1 Register = "HDMI_VERTA1"
	VertB0 Register = "HDMI_VERTB0"
	VertB1 Register = "HDMI_VERTB1"

	// deep colour
	DeepColorConfig1 Register = "HDMI_DEEP_COLOR_CONFIG_1"
	GCPWord1         Register = "HDMI_GCP_WORD_1"
	GCPConfig        Register = "HDMI_GCP_CONFIG"

	// scheduler and packet RAM
	SchedulerControl Register = "HDMI_SCHEDULER_CONTROL"
	RAMPacketConfig  Register = "HDMI_RAM_PACKET_CONFIG"
	RAMPacketStatus  Register = "HDMI_RAM_PACKET_STATUS"
	RAMPacketStart   Register = "HDMI_RAM_PACKET_START"

	// colorspace conversion
	CSCCtl           Register = "HDMI_CSC_CTL"
	CSC1211          Register = "HDMI_CSC_12_11"
	CSC1413          Register = "HDMI_CSC_14_13"
	CSC2221          Register = "HDMI_CSC_22_21"
	CSC2423          Register = "HDMI_CSC_24_23"
	CSC3231          Register = "HDMI_CSC_32_31"
	CSC3433          Register = "HDMI_CSC_34_33"
	CSCChannelCtl    Register = "HDMI_CSC_CHANNEL_CTL"
	VECInterfaceCfg  Register = "HDMI_VEC_INTERFACE_CFG"
	VECInterfaceXbar Register = "HDMI_VEC_INTERFACE_XBAR"

	// audio
	MAICtl            Register = "HDMI_MAI_CTL"
	MAIFmt            Register = "HDMI_MAI_FMT"
	MAISmp            Register = "HDMI_MAI_SMP"
	MAIThr            Register = "HDMI_MAI_THR"
	MAIConfig         Register = "HDMI_MAI_CONFIG"
	MAIChannelMap     Register = "HDMI_MAI_CHANNEL_MAP"
	AudioPacketConfig Register = "HDMI_AUDIO_PACKET_CONFIG"
	CRPCfg            Register = "HDMI_CRP_CFG"
	CTS0              Register = "HDMI_CTS_0"
	CTS1              Register = "HDMI_CTS_1"

	// PHY
	TXPhyResetCtl     Register = "HDMI_TX_PHY_RESET_CTL"
	TXPhyCtl0         Register = "HDMI_TX_PHY_CTL_0"
	TXPhyPowerdownCtl Register = "HDMI_TX_PHY_POWERDOWN_CTL"
	TXPhyChannelSwap  Register = "HDMI_TX_PHY_CHANNEL_SWAP"
	TXPhyPLLStatus    Register = "HDMI_TX_PHY_PLL_STATUS"

	// scrambling and CEC
	ScramblerCtl    Register = "HDMI_SCRAMBLER_CTL"
	CECCntrl1       Register = "HDMI_CEC_CNTRL_1"
	CECCntrl5       Register = "HDMI_CEC_CNTRL_5"
	CECCPUMaskSet   Register = "HDMI_CEC_CPU_MASK_SET"
	CECCPUMaskClear Register = "HDMI_CEC_CPU_MASK_CLEAR"
)
