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

// Package hdmi is the HDMI encoder. The Encoder type ties together the
// sub-packages: negotiation of an output configuration for a mode, the power
// sequence, infoframes, audio and scrambling.
//
// A mode set is made in three steps. AtomicCheck() finds an output
// configuration for the mode without touching the hardware. ModeSet() commits
// the result and Enable() brings the hardware up:
//
//	st, err := enc.AtomicCheck(mode)
//	if err != nil {
//		// reject the mode
//	}
//	enc.ModeSet(st)
//	err = enc.Enable()
//
// Every operation that changes the configuration of the encoder takes the
// config mutex. The register lock, in the registers.Context, is always taken
// after the config mutex and never the other way around. Connected() is
// called from interrupt context and takes only the register lock.
//
// CECEnable() is called by the CEC adapter, which can be called back from
// inside Detect(). It takes a separate, narrower lock and not the config
// mutex. See the comment on CECEnable() for the consequences.
package hdmi
