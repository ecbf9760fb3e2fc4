package universe

import "sort"

//Engines maps engine names to constructors, every engine computes the same generations
var Engines = map[string]func(o *Options, stateCh chan Status) Universe{
	"base": func(o *Options, stateCh chan Status) Universe {
		return NewBaseUniverse(o, stateCh)
	},
	"simple":        NewSimpleUniverse,
	"smallBuff":     NewSmallBuffUniverse,
	"multithreaded": NewMultithreadedUniverse,
}

//EngineNames returns the sorted engine names
func EngineNames() (engineNames []string) {
	engineNames = make([]string, 0, len(Engines))
	for k := range Engines {
		engineNames = append(engineNames, k)
	}
	sort.Strings(engineNames)
	return
}
