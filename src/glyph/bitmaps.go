package glyph

var smallBitmaps = map[rune][]string{
	'0': {
		"###",
		"#.#",
		"#.#",
		"#.#",
		"###",
	},
	'1': {
		".#.",
		"##.",
		".#.",
		".#.",
		"###",
	},
	'2': {
		"###",
		"..#",
		"###",
		"#..",
		"###",
	},
	'3': {
		"###",
		"..#",
		"###",
		"..#",
		"###",
	},
	'4': {
		"#.#",
		"#.#",
		"###",
		"..#",
		"..#",
	},
	'5': {
		"###",
		"#..",
		"###",
		"..#",
		"###",
	},
	'6': {
		"###",
		"#..",
		"###",
		"#.#",
		"###",
	},
	'7': {
		"###",
		"..#",
		"..#",
		".#.",
		".#.",
	},
	'8': {
		"###",
		"#.#",
		"###",
		"#.#",
		"###",
	},
	'9': {
		"###",
		"#.#",
		"###",
		"..#",
		"###",
	},
	'$': {
		".##",
		"##.",
		".#.",
		".##",
		"##.",
	},
}

var largeBitmaps = map[rune][]string{
	'0': {
		".###.",
		"#...#",
		"#..##",
		"#.#.#",
		"##..#",
		"#...#",
		".###.",
	},
	'1': {
		"..#..",
		".##..",
		"..#..",
		"..#..",
		"..#..",
		"..#..",
		".###.",
	},
	'2': {
		".###.",
		"#...#",
		"....#",
		"...#.",
		"..#..",
		".#...",
		"#####",
	},
	'3': {
		"#####",
		"...#.",
		"..#..",
		"...#.",
		"....#",
		"#...#",
		".###.",
	},
	'4': {
		"...#.",
		"..##.",
		".#.#.",
		"#..#.",
		"#####",
		"...#.",
		"...#.",
	},
	'5': {
		"#####",
		"#....",
		"####.",
		"....#",
		"....#",
		"#...#",
		".###.",
	},
	'6': {
		"..##.",
		".#...",
		"#....",
		"####.",
		"#...#",
		"#...#",
		".###.",
	},
	'7': {
		"#####",
		"....#",
		"...#.",
		"..#..",
		".#...",
		".#...",
		".#...",
	},
	'8': {
		".###.",
		"#...#",
		"#...#",
		".###.",
		"#...#",
		"#...#",
		".###.",
	},
	'9': {
		".###.",
		"#...#",
		"#...#",
		".####",
		"....#",
		"...#.",
		".##..",
	},
	'$': {
		"..#..",
		".####",
		"#.#..",
		".###.",
		"..#.#",
		"####.",
		"..#..",
	},
}
