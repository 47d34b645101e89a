package board_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-tangra/go-tangra-mainboard/internal/board"
)

// fakeTelemetry returns canned readings for every probe.
type fakeTelemetry struct {
	cpu, vrm, chipset float64
	m2                []float64
	total, efficiency float64
	err               error
}

func (f *fakeTelemetry) CPUTemp() (float64, error)     { return f.cpu, f.err }
func (f *fakeTelemetry) VRMTemp() (float64, error)     { return f.vrm, f.err }
func (f *fakeTelemetry) ChipsetTemp() (float64, error) { return f.chipset, f.err }
func (f *fakeTelemetry) M2Temp(slot int) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.m2[slot], nil
}
func (f *fakeTelemetry) TotalPower() (float64, error)      { return f.total, f.err }
func (f *fakeTelemetry) PowerEfficiency() (float64, error) { return f.efficiency, f.err }

func TestTelemetryOps_FailWithoutSource(t *testing.T) {
	m := board.New("ATX")

	_, err := m.MonitorTemperatures()
	require.Error(t, err)
	assert.ErrorIs(t, err, board.ErrTelemetryUnavailable)

	_, err = m.PowerDelivery()
	require.Error(t, err)
	assert.ErrorIs(t, err, board.ErrTelemetryUnavailable)

	_, err = m.RunDiagnostics()
	require.Error(t, err)
	assert.ErrorIs(t, err, board.ErrTelemetryUnavailable)
}

func TestMonitorTemperatures_WithSource(t *testing.T) {
	m := board.New("ATX")
	m.SetTelemetry(&fakeTelemetry{
		cpu: 54.5, vrm: 61, chipset: 48,
		m2: []float64{39, 41, 38, 40},
	})

	temps, err := m.MonitorTemperatures()
	require.NoError(t, err)
	assert.Equal(t, 54.5, temps.CPU)
	assert.Equal(t, 61.0, temps.VRM)
	assert.Equal(t, 48.0, temps.Chipset)
	assert.Equal(t, []float64{39, 41, 38, 40}, temps.M2Slots)
}

func TestRunDiagnostics_WithSource(t *testing.T) {
	m := board.New("E-ATX")
	m.SetTelemetry(&fakeTelemetry{
		cpu: 50, vrm: 60, chipset: 45,
		m2:    []float64{40, 40, 40, 40},
		total: 320, efficiency: 0.92,
	})

	diag, err := m.RunDiagnostics()
	require.NoError(t, err)
	assert.Equal(t, "LED Display", diag.POSTCode)
	assert.Len(t, diag.ComponentStatus, 18)
	assert.Equal(t, 320.0, diag.Power.TotalSystemPowerW)
	assert.Equal(t, 0.92, diag.Power.Efficiency)
	assert.Zero(t, diag.Power.CPUPowerW)
}

func TestRunDiagnostics_ProbeFailure(t *testing.T) {
	m := board.New("ATX")
	probeErr := errors.New("i2c bus timeout")
	m.SetTelemetry(&fakeTelemetry{err: probeErr})

	_, err := m.RunDiagnostics()
	require.Error(t, err)
	assert.ErrorIs(t, err, probeErr)
}
