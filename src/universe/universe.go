package universe

import "time"

type Universe interface {
	Status() Status
	Options() Options
	Area() Area
	StateCh() chan Status
	AddTemplate(tmpl Template)
	SettleTemplate(name string)
	SettleWithRandomData()
	Settle(pts []Point, c Cell)
	InverseCell(row int, col int)
	RegisterViewer(v Viewer)
	RegisterTicker(t Ticker)
	Exec(fn func(a *Area, now time.Time))
	Run()
	Stop()
	Step()
	Clear()
	Close()
}
