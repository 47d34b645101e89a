package board

// Status is the health state of a component.
type Status string

const (
	StatusOperational Status = "operational"
	StatusDegraded    Status = "degraded"
	StatusFailed      Status = "failed"
)

// Specs maps attribute names to values. Values are restricted to a small
// closed set of shapes: string, int, float64, bool, or []string.
type Specs map[string]any

// Component describes one physical sub-part of the board and its static
// attributes. Components are not modified after construction.
type Component struct {
	Kind         string   `json:"kind"`
	Specs        Specs    `json:"specs"`
	Location     string   `json:"location,omitempty"`
	Connections  []string `json:"connections,omitempty"`
	TemperatureC float64  `json:"temperature_c"`
	PowerDrawW   float64  `json:"power_draw_w"`
	Status       Status   `json:"status"`
}

func newComponent(kind string, specs Specs) *Component {
	return &Component{
		Kind:   kind,
		Specs:  specs,
		Status: StatusOperational,
	}
}

// newComponents builds n components of the same kind. Each gets its own
// specs map so boards never share mutable state.
func newComponents(n int, kind string, specs func() Specs) []*Component {
	list := make([]*Component, n)
	for i := range list {
		list[i] = newComponent(kind, specs())
	}
	return list
}
