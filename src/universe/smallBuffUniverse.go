package universe

import "time"

/*
	Universe implementation with buffers optimization
	nextIteration uses small buffer to store the current and previous lines only.
    the first line of this buffer is copied to the main buffer as calculating moves to the next line
	row y-1 is written back only after row y is calculated, so every cell still reads the previous generation
*/

type SmallBuffUniverse struct {
	*BaseUniverse
	tmpBuff Area
}

func NewSmallBuffUniverse(o *Options, stateCh chan Status) Universe {
	su := SmallBuffUniverse{BaseUniverse: NewBaseUniverse(o, stateCh)}
	//redefine the nextIteration
	su.BaseUniverse.nextIteration = su.nextIteration
	su.tmpBuff = createArea(su.options.Width, 2)
	su.options.Advanced["engine"] = "smallBuff"
	return &su
}

func (su *SmallBuffUniverse) nextIteration() (hasLiveEnitities bool, changed bool) {
	su.area.Lock()
	defer su.area.Unlock()
	start := time.Now()
	defer su.recordIteration(start)
	if su.area.Height == 0 {
		return
	}
	for y := range su.area.Entities {
		for x := range su.area.Entities[y] {
			nextState := nextCell(su.area.Area, y, x)
			hasLiveEnitities = hasLiveEnitities || nextState != Dead
			changed = changed || nextState != su.area.Entities[y][x]
			su.tmpBuff.Entities[1][x] = nextState
		}
		if y-1 >= 0 {
			copy(su.area.Entities[y-1], su.tmpBuff.Entities[0])
		}
		su.tmpBuff.Entities[0], su.tmpBuff.Entities[1] = su.tmpBuff.Entities[1], su.tmpBuff.Entities[0]
	}
	copy(su.area.Entities[su.area.Height-1], su.tmpBuff.Entities[0])
	return
}
