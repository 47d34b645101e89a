package board

import (
	"errors"
	"fmt"
)

// ErrTelemetryUnavailable is returned by every telemetry-backed operation
// when the board has no telemetry source. The repository ships no sensor
// integration, so without an external Telemetry implementation these
// operations always fail explicitly rather than reporting placeholder data.
var ErrTelemetryUnavailable = errors.New("telemetry source not available")

// Telemetry is the sensor boundary the board reads live values through.
// No implementation exists in this repository.
type Telemetry interface {
	CPUTemp() (float64, error)
	VRMTemp() (float64, error)
	M2Temp(slot int) (float64, error)
	ChipsetTemp() (float64, error)
	TotalPower() (float64, error)
	PowerEfficiency() (float64, error)
}

// SetTelemetry attaches a sensor source to the board.
func (m *Mainboard) SetTelemetry(t Telemetry) {
	m.telemetry = t
}

// Temperatures holds one reading from every temperature probe.
type Temperatures struct {
	CPU     float64   `json:"cpu"`
	VRM     float64   `json:"vrm"`
	M2Slots []float64 `json:"m2_slots"`
	Chipset float64   `json:"chipset"`
}

// PowerStatus holds one reading of the power delivery state.
type PowerStatus struct {
	CPUPowerW         float64 `json:"cpu_power_w"`
	TotalSystemPowerW float64 `json:"total_system_power_w"`
	Efficiency        float64 `json:"efficiency"`
}

// Diagnostics aggregates component status with live telemetry.
type Diagnostics struct {
	POSTCode        string            `json:"post_code"`
	ComponentStatus map[string]Status `json:"component_status"`
	Temperatures    *Temperatures     `json:"temperatures"`
	Power           *PowerStatus      `json:"power"`
}

// MonitorTemperatures reads every temperature probe. It fails with
// ErrTelemetryUnavailable when no telemetry source is attached.
func (m *Mainboard) MonitorTemperatures() (*Temperatures, error) {
	if m.telemetry == nil {
		return nil, fmt.Errorf("monitor temperatures: %w", ErrTelemetryUnavailable)
	}

	cpu, err := m.telemetry.CPUTemp()
	if err != nil {
		return nil, fmt.Errorf("cpu temperature: %w", err)
	}
	vrm, err := m.telemetry.VRMTemp()
	if err != nil {
		return nil, fmt.Errorf("vrm temperature: %w", err)
	}
	chipset, err := m.telemetry.ChipsetTemp()
	if err != nil {
		return nil, fmt.Errorf("chipset temperature: %w", err)
	}

	m2 := make([]float64, len(m.M2Slots))
	for i := range m.M2Slots {
		t, err := m.telemetry.M2Temp(i)
		if err != nil {
			return nil, fmt.Errorf("m.2 slot %d temperature: %w", i, err)
		}
		m2[i] = t
	}

	return &Temperatures{CPU: cpu, VRM: vrm, M2Slots: m2, Chipset: chipset}, nil
}

// PowerDelivery reads the power delivery state. It fails with
// ErrTelemetryUnavailable when no telemetry source is attached.
func (m *Mainboard) PowerDelivery() (*PowerStatus, error) {
	if m.telemetry == nil {
		return nil, fmt.Errorf("power delivery: %w", ErrTelemetryUnavailable)
	}

	total, err := m.telemetry.TotalPower()
	if err != nil {
		return nil, fmt.Errorf("total power: %w", err)
	}
	eff, err := m.telemetry.PowerEfficiency()
	if err != nil {
		return nil, fmt.Errorf("power efficiency: %w", err)
	}

	return &PowerStatus{
		CPUPowerW:         m.VRM.PowerDrawW,
		TotalSystemPowerW: total,
		Efficiency:        eff,
	}, nil
}

// RunDiagnostics combines the POST code, the per-kind status map, and live
// telemetry into one report. It fails as soon as any telemetry read fails.
func (m *Mainboard) RunDiagnostics() (*Diagnostics, error) {
	temps, err := m.MonitorTemperatures()
	if err != nil {
		return nil, err
	}
	power, err := m.PowerDelivery()
	if err != nil {
		return nil, err
	}

	postCode, _ := m.DebugSystem.Specs["post_code"].(string)

	return &Diagnostics{
		POSTCode:        postCode,
		ComponentStatus: m.VerifyComponents(),
		Temperatures:    temps,
		Power:           power,
	}, nil
}
