package board

// Spec tables for every component group. Each function returns a fresh map
// so that constructed boards own their specs outright.

func cpuSocketSpecs() Specs {
	return Specs{
		"type":           "LGA1700",
		"pins":           1700,
		"supported_cpus": []string{"12th Gen Intel", "13th Gen Intel", "14th Gen Intel"},
		"max_tdp":        253,
		"overclocking":   true,
	}
}

func chipsetSpecs() Specs {
	return Specs{
		"model":            "Z790",
		"features":         []string{"PCIe 5.0", "DDR5 Support", "WiFi 6E", "Thunderbolt 4"},
		"max_memory_speed": 7800,
	}
}

func memorySlotSpecs() Specs {
	return Specs{
		"type":        "DDR5",
		"max_speed":   7800,
		"channels":    "Dual-Channel",
		"xmp_support": true,
		"ecc_support": true,
	}
}

func m2SlotSpecs() Specs {
	return Specs{
		"interface":    "PCIe 5.0 x4",
		"form_factors": []string{"2280", "2260", "2242", "22110"},
		"cooling":      "Heatsink included",
		"max_speed":    "128 Gb/s",
	}
}

func sataPortSpecs() Specs {
	return Specs{
		"version":      "SATA III",
		"speed":        "6 Gb/s",
		"raid_support": []string{"0", "1", "5", "10"},
	}
}

func vrmSpecs() Specs {
	return Specs{
		"phases":     "20+1+2",
		"mosfets":    "DrMOS 90A",
		"controller": "Digitally Controlled",
		"cooling":    "Extended Heatsink",
		"monitoring": "Real-time current and temperature",
	}
}

func fanHeaderSpecs() Specs {
	return Specs{
		"type":          "PWM",
		"max_current":   "2A",
		"smart_control": true,
		"hybrid_mode":   true,
	}
}

func pumpHeaderSpecs() Specs {
	return Specs{
		"type":          "AIO/Custom Loop",
		"max_current":   "3A",
		"smart_control": true,
	}
}

func argbHeaderSpecs() Specs {
	return Specs{
		"pins":        3,
		"voltage":     "5V",
		"max_current": "3A",
		"led_count":   300,
	}
}

func rgbHeaderSpecs() Specs {
	return Specs{
		"pins":        4,
		"voltage":     "12V",
		"max_current": "3A",
	}
}

func debugSystemSpecs() Specs {
	return Specs{
		"post_code":           "LED Display",
		"voltage_monitoring":  true,
		"temperature_sensors": 10,
		"fan_monitoring":      true,
		"error_logging":       true,
	}
}

func biosSpecs() Specs {
	return Specs{
		"type":        "UEFI",
		"size":        "256Mb",
		"dual_bios":   true,
		"flashback":   true,
		"secure_boot": true,
		"tpm_support": "2.0",
	}
}

func audioSpecs() Specs {
	return Specs{
		"codec":     "Realtek ALC4082",
		"dac":       "ESS SABRE9018Q2C",
		"snr":       "130dB",
		"amplifier": "Texas Instruments",
		"isolation": "EMI Shielding",
	}
}

func networkSpecs() Specs {
	return Specs{
		"ethernet_1": "10 GbE",
		"ethernet_2": "2.5 GbE",
		"wifi":       "WiFi 6E",
		"bluetooth":  "5.3",
	}
}

func thunderboltSpecs() Specs {
	return Specs{
		"speed":           "40 Gbps",
		"power_delivery":  "100W",
		"display_support": "8K@60Hz",
	}
}

func pcieX16Specs() Specs {
	return Specs{
		"version":     "PCIe 5.0",
		"lanes":       16,
		"reinforced":  true,
		"bifurcation": "x8/x8 capable",
	}
}

func pcieX4Specs() Specs {
	return Specs{
		"version": "PCIe 4.0",
		"lanes":   4,
	}
}

func pcieX1Specs() Specs {
	return Specs{
		"version": "PCIe 3.0",
		"lanes":   1,
	}
}
