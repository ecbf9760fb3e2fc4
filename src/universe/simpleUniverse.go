package universe

import "time"

/*
	Simple Universe implementation with two buffers
	All cells state is calculated to the new buffer and then this buffer data is copied to the universe replacing the old one
*/
type SimpleUniverse struct {
	*BaseUniverse
	tmpBuff Area
}

func NewSimpleUniverse(o *Options, stateCh chan Status) Universe {
	su := SimpleUniverse{BaseUniverse: NewBaseUniverse(o, stateCh)}
	//redefine the nextIteration
	su.BaseUniverse.nextIteration = su.nextIteration
	su.tmpBuff = createArea(su.options.Width, su.options.Height)
	su.options.Advanced["engine"] = "simple"
	return &su
}

func (su *SimpleUniverse) nextIteration() (hasLiveEnitities bool, changed bool) {
	su.area.Lock()
	defer su.area.Unlock()
	start := time.Now()
	for y := range su.area.Entities {
		for x := range su.area.Entities[y] {
			nextState := nextCell(su.area.Area, y, x)
			hasLiveEnitities = hasLiveEnitities || nextState != Dead
			changed = changed || nextState != su.area.Entities[y][x]
			su.tmpBuff.Entities[y][x] = nextState
		}
	}

	for y := range su.area.Entities {
		copy(su.area.Entities[y], su.tmpBuff.Entities[y])
	}

	su.recordIteration(start)
	return
}
