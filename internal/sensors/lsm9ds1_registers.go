// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"

	"github.com/relabs-tech/lsm9ds1/internal/lsm9ds1"
)

// BitField describes one field of a register.
type BitField struct {
	Bits        string `json:"bits"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Values      string `json:"values,omitempty"`
}

// RegisterInfo is the metadata shown by the register debug tool.
type RegisterInfo struct {
	Address     string     `json:"address"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Access      string     `json:"access"` // "R" or "RW"
	Default     string     `json:"default,omitempty"`
	BitFields   []BitField `json:"bit_fields,omitempty"`
}

type registerDoc struct {
	description string
	def         string
	fields      []BitField
}

const (
	odrValues    = "0=Power-down, 1=14.9Hz, 2=59.5Hz, 3=119Hz, 4=238Hz, 5=476Hz, 6=952Hz"
	odrXLValues  = "0=Power-down, 1=10Hz, 2=50Hz, 3=119Hz, 4=238Hz, 5=476Hz, 6=952Hz"
	enableValues = "0=Disabled, 1=Enabled"
)

// lsm9ds1Docs holds descriptions for the registers the driver programs or
// reads. The rest get a generic description from their name.
var lsm9ds1Docs = map[lsm9ds1.Register]registerDoc{
	lsm9ds1.WhoAmI: {"Accelerometer/gyroscope identification (should be 0x68)", "0x68", []BitField{
		{Bits: "7:0", Name: "WHO_AM_I", Description: "Device ID", Values: "0x68=LSM9DS1 A/G"},
	}},
	lsm9ds1.CtrlReg1G: {"Angular rate sensor control 1", "0x00", []BitField{
		{Bits: "7:5", Name: "ODR_G", Description: "Output data rate (accel+gyro)", Values: odrValues},
		{Bits: "4:3", Name: "FS_G", Description: "Gyroscope full scale", Values: "0=245dps, 1=500dps, 3=2000dps"},
		{Bits: "1:0", Name: "BW_G", Description: "Gyroscope bandwidth", Values: "Depends on ODR_G"},
	}},
	lsm9ds1.CtrlReg2G: {"Angular rate sensor control 2", "0x00", []BitField{
		{Bits: "3:2", Name: "INT_SEL", Description: "Interrupt generator selection", Values: "0=Unfiltered, 1=HPF, 2=LPF2"},
		{Bits: "1:0", Name: "OUT_SEL", Description: "Output selection", Values: "0=Unfiltered, 1=HPF, 2=LPF2"},
	}},
	lsm9ds1.CtrlReg3G: {"Angular rate sensor control 3", "0x00", []BitField{
		{Bits: "7", Name: "LP_mode", Description: "Low-power mode", Values: enableValues},
		{Bits: "6", Name: "HP_EN", Description: "High-pass filter", Values: enableValues},
		{Bits: "3:0", Name: "HPCF_G", Description: "High-pass cutoff", Values: "0-9, depends on ODR_G"},
	}},
	lsm9ds1.StatusRegG: {"Accelerometer/gyroscope status", "", []BitField{
		{Bits: "6", Name: "IG_XL", Description: "Accelerometer interrupt"},
		{Bits: "5", Name: "IG_G", Description: "Gyroscope interrupt"},
		{Bits: "4", Name: "INACT", Description: "Inactivity interrupt"},
		{Bits: "3", Name: "BOOT_STATUS", Description: "Boot running"},
		{Bits: "2", Name: "TDA", Description: "Temperature data available"},
		{Bits: "1", Name: "GDA", Description: "Gyroscope data available"},
		{Bits: "0", Name: "XLDA", Description: "Accelerometer data available"},
	}},
	lsm9ds1.OutTempL: {"Temperature low byte (16 LSB/°C, 0 = 25°C)", "", nil},
	lsm9ds1.OutTempH: {"Temperature high byte", "", nil},
	lsm9ds1.CtrlReg4: {"Control 4 (gyroscope axes)", "0x38", []BitField{
		{Bits: "5", Name: "Zen_G", Description: "Gyroscope Z axis", Values: enableValues},
		{Bits: "4", Name: "Yen_G", Description: "Gyroscope Y axis", Values: enableValues},
		{Bits: "3", Name: "Xen_G", Description: "Gyroscope X axis", Values: enableValues},
		{Bits: "1", Name: "LIR_XL1", Description: "Latched interrupt", Values: enableValues},
		{Bits: "0", Name: "4D_XL1", Description: "4D option on interrupt", Values: enableValues},
	}},
	lsm9ds1.CtrlReg5XL: {"Linear acceleration sensor control 5", "0x38", []BitField{
		{Bits: "7:6", Name: "DEC", Description: "Decimation", Values: "0=None, 1=2 samples, 2=4 samples, 3=8 samples"},
		{Bits: "5", Name: "Zen_XL", Description: "Accelerometer Z axis (driver writes it inverted)", Values: enableValues},
		{Bits: "4", Name: "Yen_XL", Description: "Accelerometer Y axis", Values: enableValues},
		{Bits: "3", Name: "Xen_XL", Description: "Accelerometer X axis", Values: enableValues},
	}},
	lsm9ds1.CtrlReg6XL: {"Linear acceleration sensor control 6", "0x00", []BitField{
		{Bits: "7:5", Name: "ODR_XL", Description: "Output data rate (accel only)", Values: odrXLValues},
		{Bits: "4:3", Name: "FS_XL", Description: "Accelerometer full scale", Values: "0=±2g, 1=±16g, 2=±4g, 3=±8g"},
		{Bits: "2", Name: "BW_SCAL_ODR", Description: "Bandwidth selection", Values: "0=From ODR, 1=From BW_XL"},
		{Bits: "1:0", Name: "BW_XL", Description: "Anti-aliasing bandwidth", Values: "0=408Hz, 1=211Hz, 2=105Hz, 3=50Hz"},
	}},
	lsm9ds1.CtrlReg7XL: {"Linear acceleration sensor control 7", "0x00", []BitField{
		{Bits: "7", Name: "HR", Description: "High resolution mode", Values: enableValues},
		{Bits: "6:5", Name: "DCF", Description: "Digital filter cutoff", Values: "0=ODR/50, 1=ODR/100, 2=ODR/9, 3=ODR/400"},
		{Bits: "2", Name: "FDS", Description: "Filtered data selection", Values: "0=Bypass, 1=Filtered"},
		{Bits: "0", Name: "HPIS1", Description: "High-pass filter on interrupt", Values: enableValues},
	}},
	lsm9ds1.CtrlReg8: {"Control 8 (master)", "0x04", []BitField{
		{Bits: "7", Name: "BOOT", Description: "Reboot memory content", Values: "0=Normal, 1=Reboot"},
		{Bits: "6", Name: "BDU", Description: "Block data update", Values: "0=Continuous, 1=Until read"},
		{Bits: "5", Name: "H_LACTIVE", Description: "Interrupt active level", Values: "0=High, 1=Low"},
		{Bits: "4", Name: "PP_OD", Description: "Interrupt pad mode", Values: "0=Push-pull, 1=Open drain"},
		{Bits: "3", Name: "SIM", Description: "SPI mode", Values: "0=4-wire, 1=3-wire"},
		{Bits: "2", Name: "IF_ADD_INC", Description: "Address auto-increment", Values: enableValues},
		{Bits: "1", Name: "BLE", Description: "Endianness", Values: "0=Little, 1=Big"},
		{Bits: "0", Name: "SW_RESET", Description: "Software reset", Values: "0=Normal, 1=Reset"},
	}},
	lsm9ds1.CtrlReg9: {"Control 9", "0x00", []BitField{
		{Bits: "6", Name: "SLEEP_G", Description: "Gyroscope sleep", Values: enableValues},
		{Bits: "4", Name: "FIFO_TEMP_EN", Description: "Temperature in FIFO", Values: enableValues},
		{Bits: "3", Name: "DRDY_mask_bit", Description: "Data available timer", Values: enableValues},
		{Bits: "2", Name: "I2C_DISABLE", Description: "Disable I2C", Values: "0=I2C+SPI, 1=SPI only"},
		{Bits: "1", Name: "FIFO_EN", Description: "FIFO memory", Values: enableValues},
		{Bits: "0", Name: "STOP_ON_FTH", Description: "Stop on FIFO threshold", Values: enableValues},
	}},
	lsm9ds1.CtrlReg10: {"Control 10 (self-test)", "0x00", []BitField{
		{Bits: "2", Name: "ST_G", Description: "Gyroscope self-test", Values: enableValues},
		{Bits: "0", Name: "ST_XL", Description: "Accelerometer self-test", Values: enableValues},
	}},
	lsm9ds1.WhoAmIM: {"Magnetometer identification (should be 0x3D)", "0x3D", []BitField{
		{Bits: "7:0", Name: "WHO_AM_I_M", Description: "Device ID", Values: "0x3D=LSM9DS1 M"},
	}},
	lsm9ds1.CtrlReg1M: {"Magnetometer control 1", "0x10", []BitField{
		{Bits: "7", Name: "TEMP_COMP", Description: "Temperature compensation", Values: enableValues},
		{Bits: "6:5", Name: "OM", Description: "X/Y performance mode", Values: "0=Low-power, 1=Medium, 2=High, 3=Ultra-high"},
		{Bits: "4:2", Name: "DO", Description: "Output data rate", Values: "0=0.625Hz, 1=1.25Hz, 2=2.5Hz, 3=5Hz, 4=10Hz, 5=20Hz, 6=40Hz, 7=80Hz"},
		{Bits: "1", Name: "FAST_ODR", Description: "Rates above 80Hz", Values: enableValues},
		{Bits: "0", Name: "ST", Description: "Self-test", Values: enableValues},
	}},
	lsm9ds1.CtrlReg2M: {"Magnetometer control 2", "0x00", []BitField{
		{Bits: "6:5", Name: "FS", Description: "Full scale", Values: "0=±4gauss, 1=±8gauss, 2=±12gauss, 3=±16gauss"},
		{Bits: "3", Name: "REBOOT", Description: "Reboot memory content", Values: "0=Normal, 1=Reboot"},
		{Bits: "2", Name: "SOFT_RST", Description: "Reset registers", Values: "0=Normal, 1=Reset"},
	}},
	lsm9ds1.CtrlReg3M: {"Magnetometer control 3", "0x03", []BitField{
		{Bits: "7", Name: "I2C_DISABLE", Description: "Disable I2C", Values: "0=Enabled, 1=Disabled"},
		{Bits: "5", Name: "LP", Description: "Low-power mode", Values: enableValues},
		{Bits: "2", Name: "SIM", Description: "SPI mode", Values: "0=Write only, 1=Read/write"},
		{Bits: "1:0", Name: "MD", Description: "Operating mode", Values: "0=Continuous, 1=Single, 2/3=Power-down"},
	}},
	lsm9ds1.CtrlReg4M: {"Magnetometer control 4", "0x00", []BitField{
		{Bits: "3:2", Name: "OMZ", Description: "Z performance mode", Values: "0=Low-power, 1=Medium, 2=High, 3=Ultra-high"},
		{Bits: "1", Name: "BLE", Description: "Endianness", Values: "0=Little, 1=Big"},
	}},
	lsm9ds1.CtrlReg5M: {"Magnetometer control 5", "0x00", []BitField{
		{Bits: "7", Name: "FAST_READ", Description: "Read high part only", Values: enableValues},
		{Bits: "6", Name: "BDU", Description: "Block data update", Values: "0=Continuous, 1=Until read"},
	}},
	lsm9ds1.StatusRegM: {"Magnetometer status", "", []BitField{
		{Bits: "7", Name: "ZYXOR", Description: "X, Y, Z data overrun"},
		{Bits: "3", Name: "ZYXDA", Description: "X, Y, Z new data available"},
	}},
}

// LSM9DS1RegisterMap returns metadata for every register of component c.
func LSM9DS1RegisterMap(c lsm9ds1.Component) []RegisterInfo {
	var infos []RegisterInfo
	for _, r := range lsm9ds1.Registers() {
		rc, addr := r.Addr()
		if rc != c {
			continue
		}
		info := RegisterInfo{
			Address:     fmt.Sprintf("0x%02X", addr),
			Name:        r.String(),
			Description: r.String(),
			Access:      "R",
		}
		if r.Writable() {
			info.Access = "RW"
		}
		if doc, ok := lsm9ds1Docs[r]; ok {
			info.Description = doc.description
			info.Default = doc.def
			info.BitFields = doc.fields
		}
		infos = append(infos, info)
	}
	return infos
}
