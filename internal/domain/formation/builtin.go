package formation

const (
	rowGK  = 88
	rowDef = 70
	rowDM  = 57
	rowMid = 48
	rowAM  = 36
	rowFwd = 20
)

func gk() Slot { return Slot{ID: "GK", Label: "GK", X: 50, Y: rowGK} }

func builtinFormations() []Formation {
	return []Formation{
		{ID: "3-5-2", Slots: []Slot{
			gk(),
			{ID: "CB1", Label: "CB", X: 30, Y: rowDef},
			{ID: "CB2", Label: "CB", X: 50, Y: rowDef + 2},
			{ID: "CB3", Label: "CB", X: 70, Y: rowDef},
			{ID: "LWB", Label: "LWB", X: 12, Y: rowMid},
			{ID: "CM1", Label: "CM", X: 33, Y: rowMid},
			{ID: "CDM", Label: "CDM", X: 50, Y: rowDM},
			{ID: "CM2", Label: "CM", X: 67, Y: rowMid},
			{ID: "RWB", Label: "RWB", X: 88, Y: rowMid},
			{ID: "ST1", Label: "ST", X: 38, Y: rowFwd},
			{ID: "ST2", Label: "ST", X: 62, Y: rowFwd},
		}},
		{ID: "3-4-3", Slots: []Slot{
			gk(),
			{ID: "CB1", Label: "CB", X: 30, Y: rowDef},
			{ID: "CB2", Label: "CB", X: 50, Y: rowDef + 2},
			{ID: "CB3", Label: "CB", X: 70, Y: rowDef},
			{ID: "LM", Label: "LM", X: 14, Y: rowMid},
			{ID: "CM1", Label: "CM", X: 38, Y: rowMid + 3},
			{ID: "CM2", Label: "CM", X: 62, Y: rowMid + 3},
			{ID: "RM", Label: "RM", X: 86, Y: rowMid},
			{ID: "LW", Label: "LW", X: 22, Y: rowFwd + 4},
			{ID: "ST", Label: "ST", X: 50, Y: rowFwd},
			{ID: "RW", Label: "RW", X: 78, Y: rowFwd + 4},
		}},
		{ID: "4-4-2", Slots: []Slot{
			gk(),
			{ID: "LB", Label: "LB", X: 14, Y: rowDef - 3},
			{ID: "CB1", Label: "CB", X: 38, Y: rowDef},
			{ID: "CB2", Label: "CB", X: 62, Y: rowDef},
			{ID: "RB", Label: "RB", X: 86, Y: rowDef - 3},
			{ID: "LM", Label: "LM", X: 14, Y: rowMid - 2},
			{ID: "CM1", Label: "CM", X: 38, Y: rowMid},
			{ID: "CM2", Label: "CM", X: 62, Y: rowMid},
			{ID: "RM", Label: "RM", X: 86, Y: rowMid - 2},
			{ID: "ST1", Label: "ST", X: 38, Y: rowFwd},
			{ID: "ST2", Label: "ST", X: 62, Y: rowFwd},
		}},
		{ID: "4-3-3", Slots: []Slot{
			gk(),
			{ID: "LB", Label: "LB", X: 14, Y: rowDef - 3},
			{ID: "CB1", Label: "CB", X: 38, Y: rowDef},
			{ID: "CB2", Label: "CB", X: 62, Y: rowDef},
			{ID: "RB", Label: "RB", X: 86, Y: rowDef - 3},
			{ID: "CM1", Label: "CM", X: 28, Y: rowMid},
			{ID: "CDM", Label: "CDM", X: 50, Y: rowDM},
			{ID: "CM2", Label: "CM", X: 72, Y: rowMid},
			{ID: "LW", Label: "LW", X: 18, Y: rowFwd + 4},
			{ID: "ST", Label: "ST", X: 50, Y: rowFwd},
			{ID: "RW", Label: "RW", X: 82, Y: rowFwd + 4},
		}},
		{ID: "4-2-3-1", Slots: []Slot{
			gk(),
			{ID: "LB", Label: "LB", X: 14, Y: rowDef - 3},
			{ID: "CB1", Label: "CB", X: 38, Y: rowDef},
			{ID: "CB2", Label: "CB", X: 62, Y: rowDef},
			{ID: "RB", Label: "RB", X: 86, Y: rowDef - 3},
			{ID: "CDM1", Label: "CDM", X: 38, Y: rowDM},
			{ID: "CDM2", Label: "CDM", X: 62, Y: rowDM},
			{ID: "LAM", Label: "LAM", X: 18, Y: rowAM},
			{ID: "CAM", Label: "CAM", X: 50, Y: rowAM},
			{ID: "RAM", Label: "RAM", X: 82, Y: rowAM},
			{ID: "ST", Label: "ST", X: 50, Y: rowFwd},
		}},
		{ID: "4-1-2-1-2", Slots: []Slot{
			gk(),
			{ID: "LB", Label: "LB", X: 14, Y: rowDef - 3},
			{ID: "CB1", Label: "CB", X: 38, Y: rowDef},
			{ID: "CB2", Label: "CB", X: 62, Y: rowDef},
			{ID: "RB", Label: "RB", X: 86, Y: rowDef - 3},
			{ID: "CDM", Label: "CDM", X: 50, Y: rowDM},
			{ID: "CM1", Label: "CM", X: 28, Y: rowMid - 2},
			{ID: "CM2", Label: "CM", X: 72, Y: rowMid - 2},
			{ID: "CAM", Label: "CAM", X: 50, Y: rowAM},
			{ID: "ST1", Label: "ST", X: 38, Y: rowFwd},
			{ID: "ST2", Label: "ST", X: 62, Y: rowFwd},
		}},
		{ID: "4-5-1", Slots: []Slot{
			gk(),
			{ID: "LB", Label: "LB", X: 14, Y: rowDef - 3},
			{ID: "CB1", Label: "CB", X: 38, Y: rowDef},
			{ID: "CB2", Label: "CB", X: 62, Y: rowDef},
			{ID: "RB", Label: "RB", X: 86, Y: rowDef - 3},
			{ID: "LM", Label: "LM", X: 12, Y: rowMid - 4},
			{ID: "CM1", Label: "CM", X: 31, Y: rowMid},
			{ID: "CM2", Label: "CM", X: 50, Y: rowMid + 4},
			{ID: "CM3", Label: "CM", X: 69, Y: rowMid},
			{ID: "RM", Label: "RM", X: 88, Y: rowMid - 4},
			{ID: "ST", Label: "ST", X: 50, Y: rowFwd},
		}},
		{ID: "5-3-2", Slots: []Slot{
			gk(),
			{ID: "LWB", Label: "LWB", X: 10, Y: rowDef - 8},
			{ID: "CB1", Label: "CB", X: 30, Y: rowDef},
			{ID: "CB2", Label: "CB", X: 50, Y: rowDef + 2},
			{ID: "CB3", Label: "CB", X: 70, Y: rowDef},
			{ID: "RWB", Label: "RWB", X: 90, Y: rowDef - 8},
			{ID: "CM1", Label: "CM", X: 28, Y: rowMid},
			{ID: "CM2", Label: "CM", X: 50, Y: rowMid + 3},
			{ID: "CM3", Label: "CM", X: 72, Y: rowMid},
			{ID: "ST1", Label: "ST", X: 38, Y: rowFwd},
			{ID: "ST2", Label: "ST", X: 62, Y: rowFwd},
		}},
		{ID: "5-4-1", Slots: []Slot{
			gk(),
			{ID: "LWB", Label: "LWB", X: 10, Y: rowDef - 8},
			{ID: "CB1", Label: "CB", X: 30, Y: rowDef},
			{ID: "CB2", Label: "CB", X: 50, Y: rowDef + 2},
			{ID: "CB3", Label: "CB", X: 70, Y: rowDef},
			{ID: "RWB", Label: "RWB", X: 90, Y: rowDef - 8},
			{ID: "LM", Label: "LM", X: 16, Y: rowMid - 4},
			{ID: "CM1", Label: "CM", X: 38, Y: rowMid},
			{ID: "CM2", Label: "CM", X: 62, Y: rowMid},
			{ID: "RM", Label: "RM", X: 84, Y: rowMid - 4},
			{ID: "ST", Label: "ST", X: 50, Y: rowFwd},
		}},
	}
}
