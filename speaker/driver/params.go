package driver

// Parameters is the user-supplied Thiele-Small record. A zero value means
// "not supplied"; Derive fills the gaps from whatever consistent subset is
// present.
type Parameters struct {
	Re   float64 // voice-coil DC resistance, Ω
	Le   float64 // voice-coil inductance, H
	Red  float64 // eddy-current loss resistance parallel to Le, Ω (optional)
	Bl   float64 // force factor, T·m
	Sd   float64 // effective piston area, m²
	Xmax float64 // linear excursion, m (optional)

	Fs  float64 // free-air resonance, Hz
	Qts float64
	Qes float64
	Qms float64

	Vas float64 // equivalent compliance volume, m³
	Cms float64 // suspension compliance, m/N
	Mms float64 // moving mass including air load, kg
}

// ThieleSmall is the complete, self-consistent parameter set of a derived
// Model.
type ThieleSmall struct {
	Re   float64 `json:"Re"`
	Le   float64 `json:"Le"`
	Red  float64 `json:"Red,omitempty"`
	Bl   float64 `json:"Bl"`
	Sd   float64 `json:"Sd"`
	Xmax float64 `json:"Xmax,omitempty"`
	Fs   float64 `json:"Fs"`
	Qts  float64 `json:"Qts"`
	Qes  float64 `json:"Qes"`
	Qms  float64 `json:"Qms"`
	Vas  float64 `json:"Vas"`
	Cms  float64 `json:"Cms"`
	Mms  float64 `json:"Mms"`
	Mmd  float64 `json:"Mmd"` // diaphragm mass without the air load
	Rms  float64 `json:"Rms"`
}

// WarningKind classifies a non-fatal derivation adjustment.
type WarningKind string

// Derivation warnings.
const (
	// WarnQmsRefit means Qts, Qes and Qms were inconsistent and Qms was
	// refitted from (Qts, Qes).
	WarnQmsRefit WarningKind = "qms-refit"
	// WarnQesFromBl means the supplied Qes disagreed with Bl and was
	// recomputed from Bl.
	WarnQesFromBl WarningKind = "qes-from-bl"
)

// Warning reports a parameter the derivation had to adjust.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}
