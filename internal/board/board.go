// Package board models a desktop mainboard as a fixed registry of typed
// component groups built from literal spec tables.
package board

// Kind labels for every component group on the board.
const (
	KindCPUSocket   = "CPU Socket"
	KindChipset     = "Chipset"
	KindRAMSlot     = "RAM Slot"
	KindM2Slot      = "M.2 Slot"
	KindSATAPort    = "SATA Port"
	KindVRM         = "VRM"
	KindFanHeader   = "Fan Header"
	KindPumpHeader  = "Pump Header"
	KindARGBHeader  = "ARGB Header"
	KindRGBHeader   = "RGB Header"
	KindDebugSystem = "Debug System"
	KindBIOS        = "BIOS"
	KindAudio       = "Audio"
	KindNetwork     = "Network"
	KindThunderbolt = "Thunderbolt 4"
	KindPCIeX16     = "PCIe x16"
	KindPCIeX4      = "PCIe x4"
	KindPCIeX1      = "PCIe x1"
)

// RGBHeaders groups the RGB lighting headers by signaling type.
type RGBHeaders struct {
	Addressable []*Component `json:"addressable"`
	Traditional []*Component `json:"traditional"`
}

// PCIeSlots groups the expansion slots by lane width.
type PCIeSlots struct {
	X16 []*Component `json:"x16"`
	X4  []*Component `json:"x4"`
	X1  []*Component `json:"x1"`
}

// Group is one named entry of the board's component registry.
type Group struct {
	Name       string       `json:"name"`
	Components []*Component `json:"components"`
}

// Snapshot is the serializable form of a constructed board: the form factor
// plus the ordered group registry.
type Snapshot struct {
	FormFactor string  `json:"form_factor"`
	Groups     []Group `json:"groups"`
}

// Mainboard holds the fixed component topology for one board. The topology
// is identical for every form factor; the label is carried verbatim.
type Mainboard struct {
	FormFactor string

	CPUSocket   *Component
	Chipset     *Component
	MemorySlots []*Component
	M2Slots     []*Component
	SATAPorts   []*Component
	VRM         *Component
	FanHeaders  []*Component
	PumpHeaders []*Component
	RGBHeaders  RGBHeaders
	DebugSystem *Component
	BIOS        *Component
	Audio       *Component
	Network     *Component
	Thunderbolt []*Component
	PCIeSlots   PCIeSlots

	// groups is the explicit traversal registry, built once at
	// construction in declaration order. It replaces any need to walk
	// fields reflectively.
	groups []Group

	telemetry Telemetry
}

// New constructs the full component topology for the given form factor.
// Construction is deterministic and cannot fail.
func New(formFactor string) *Mainboard {
	m := &Mainboard{
		FormFactor:  formFactor,
		CPUSocket:   newComponent(KindCPUSocket, cpuSocketSpecs()),
		Chipset:     newComponent(KindChipset, chipsetSpecs()),
		MemorySlots: newComponents(4, KindRAMSlot, memorySlotSpecs),
		M2Slots:     newComponents(4, KindM2Slot, m2SlotSpecs),
		SATAPorts:   newComponents(8, KindSATAPort, sataPortSpecs),
		VRM:         newComponent(KindVRM, vrmSpecs()),
		FanHeaders:  newComponents(8, KindFanHeader, fanHeaderSpecs),
		PumpHeaders: newComponents(2, KindPumpHeader, pumpHeaderSpecs),
		RGBHeaders: RGBHeaders{
			Addressable: newComponents(3, KindARGBHeader, argbHeaderSpecs),
			Traditional: newComponents(2, KindRGBHeader, rgbHeaderSpecs),
		},
		DebugSystem: newComponent(KindDebugSystem, debugSystemSpecs()),
		BIOS:        newComponent(KindBIOS, biosSpecs()),
		Audio:       newComponent(KindAudio, audioSpecs()),
		Network:     newComponent(KindNetwork, networkSpecs()),
		Thunderbolt: newComponents(2, KindThunderbolt, thunderboltSpecs),
		PCIeSlots: PCIeSlots{
			X16: newComponents(2, KindPCIeX16, pcieX16Specs),
			X4:  newComponents(1, KindPCIeX4, pcieX4Specs),
			X1:  newComponents(2, KindPCIeX1, pcieX1Specs),
		},
	}

	m.groups = []Group{
		{Name: "cpu_socket", Components: []*Component{m.CPUSocket}},
		{Name: "chipset", Components: []*Component{m.Chipset}},
		{Name: "memory_slots", Components: m.MemorySlots},
		{Name: "m2_slots", Components: m.M2Slots},
		{Name: "sata_ports", Components: m.SATAPorts},
		{Name: "vrm", Components: []*Component{m.VRM}},
		{Name: "fan_headers", Components: m.FanHeaders},
		{Name: "pump_headers", Components: m.PumpHeaders},
		{Name: "rgb_headers/addressable", Components: m.RGBHeaders.Addressable},
		{Name: "rgb_headers/traditional", Components: m.RGBHeaders.Traditional},
		{Name: "debug_system", Components: []*Component{m.DebugSystem}},
		{Name: "bios", Components: []*Component{m.BIOS}},
		{Name: "audio", Components: []*Component{m.Audio}},
		{Name: "network", Components: []*Component{m.Network}},
		{Name: "thunderbolt", Components: m.Thunderbolt},
		{Name: "pcie_slots/x16", Components: m.PCIeSlots.X16},
		{Name: "pcie_slots/x4", Components: m.PCIeSlots.X4},
		{Name: "pcie_slots/x1", Components: m.PCIeSlots.X1},
	}

	return m
}

// Groups returns the ordered group registry.
func (m *Mainboard) Groups() []Group {
	return m.groups
}

// Components returns every component exactly once, in group declaration
// order.
func (m *Mainboard) Components() []*Component {
	var all []*Component
	for _, g := range m.groups {
		all = append(all, g.Components...)
	}
	return all
}

// VerifyComponents maps each component kind to its current status.
//
// Kinds that occur more than once (every slot/port/header group) collapse to
// a single key, with later entries overwriting earlier ones. All components
// of one kind share the same spec table and initial status, so the collapse
// is deterministic, but the aggregation is lossy: it cannot distinguish one
// failed RAM slot among four.
func (m *Mainboard) VerifyComponents() map[string]Status {
	statuses := make(map[string]Status)
	for _, c := range m.Components() {
		statuses[c.Kind] = c.Status
	}
	return statuses
}

// Snapshot returns the serializable form of the board.
func (m *Mainboard) Snapshot() Snapshot {
	return Snapshot{
		FormFactor: m.FormFactor,
		Groups:     m.groups,
	}
}
