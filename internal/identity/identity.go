// Package identity derives the controller identity that scopes persisted
// preferences, so that two AmpliPi units on one network keep separate
// favorites even though both answer to the same hostname.
package identity

import (
	"fmt"
	"net"
	"strings"

	"github.com/micro-nova/amplipi-prefs/internal/models"
)

// Normalize returns the canonical spelling of a controller identity.
// MAC addresses are compared case-insensitively, so identities are lower case.
func Normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// FromInfo derives the controller identity from the system info a live source
// reports: the MAC address when present, otherwise the board serial number.
func FromInfo(info models.Info) (string, error) {
	if info.MAC != "" {
		hw, err := net.ParseMAC(info.MAC)
		if err != nil {
			return "", models.InvalidArgument(fmt.Sprintf("invalid controller MAC %q", info.MAC))
		}
		return Normalize(hw.String()), nil
	}
	// "None" is what the daemon reports when the EEPROM is unreadable.
	if s := strings.TrimSpace(info.Serial); s != "" && s != "None" {
		return Normalize("serial-" + s), nil
	}
	return "", models.InvalidArgument("controller identity unavailable")
}

// LocalHardwareAddr returns the hardware address of the first interface that
// is up and not a loopback.
func LocalHardwareAddr() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", fmt.Errorf("identity: list interfaces: %w", err)
	}
	return hardwareAddr(ifaces)
}

func hardwareAddr(ifaces []net.Interface) (string, error) {
	for _, ifc := range ifaces {
		if ifc.Flags&net.FlagUp == 0 || ifc.Flags&net.FlagLoopback != 0 {
			continue
		}
		if len(ifc.HardwareAddr) == 0 {
			continue
		}
		return Normalize(ifc.HardwareAddr.String()), nil
	}
	return "", models.InvalidArgument("no network interface with a hardware address")
}
