// Package probe reads the local host's SMBIOS tables to identify the
// physical mainboard the daemon is running on.
package probe

import (
	"fmt"
	"strings"

	"github.com/siderolabs/go-smbios/smbios"
)

// BaseboardInfo holds the SMBIOS baseboard identity of the local host.
type BaseboardInfo struct {
	Manufacturer  string `json:"manufacturer"`
	Product       string `json:"product"`
	Version       string `json:"version"`
	SerialNumber  string `json:"serial_number"`
	AssetTag      string `json:"asset_tag,omitempty"`
	BIOSVendor    string `json:"bios_vendor"`
	BIOSVersion   string `json:"bios_version"`
	SMBIOSVersion string `json:"smbios_version"`
}

// Baseboard reads the local SMBIOS tables and returns the baseboard
// identity. Requires access to the firmware tables (typically root on
// Linux).
func Baseboard() (*BaseboardInfo, error) {
	s, err := smbios.New()
	if err != nil {
		return nil, fmt.Errorf("read SMBIOS tables: %w", err)
	}

	bb := s.BaseboardInformation
	return &BaseboardInfo{
		Manufacturer:  strings.TrimSpace(bb.Manufacturer),
		Product:       strings.TrimSpace(bb.Product),
		Version:       strings.TrimSpace(bb.Version),
		SerialNumber:  strings.TrimSpace(bb.SerialNumber),
		AssetTag:      strings.TrimSpace(bb.AssetTag),
		BIOSVendor:    s.BIOSInformation.Vendor,
		BIOSVersion:   s.BIOSInformation.Version,
		SMBIOSVersion: fmt.Sprintf("%d.%d.%d", s.Version.Major, s.Version.Minor, s.Version.Revision),
	}, nil
}
