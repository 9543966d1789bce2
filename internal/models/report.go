package models

// Report is the combat-log service's fight listing for one report.
// Fight times are milliseconds relative to Start.
type Report struct {
	Start  int64   `json:"start"` // Unix ms
	End    int64   `json:"end"`   // Unix ms
	Error  string  `json:"error,omitempty"`
	Fights []Fight `json:"fights"`
}

// Fight is a single encounter attempt within a report.
// Boss == 0 marks trash fights, which are never converted to pulls.
// BossPercentage and the phase fields are optional in the API
// payload, hence pointers.
type Fight struct {
	ID                            int   `json:"id"`
	StartTime                     int64 `json:"startTime"`
	EndTime                       int64 `json:"endTime"`
	Boss                          int   `json:"boss"`
	BossPercentage                *int  `json:"bossPercentage,omitempty"` // 4800 = 48.00% remaining inverse
	LastPhaseForPercentageDisplay *int  `json:"lastPhaseForPercentageDisplay,omitempty"`
	LastPhaseIsIntermission       bool  `json:"lastPhaseIsIntermission,omitempty"`
}
