package universe

//DefaultTemplates are the ambient seeding patterns known to every universe
var DefaultTemplates = []Template{
	{
		Name:  "rpentomino",
		Descr: "the R-pentomino, a methuselah that settles after 1103 generations",
		Coordinates: []Point{
			{-1, 0}, {-1, 1},
			{0, -1}, {0, 0},
			{1, 0},
		},
	},
	{
		Name:  "gliders",
		Descr: "four gliders heading away from the centre",
		Coordinates: []Point{
			// south-east
			{4, 5}, {5, 6}, {6, 4}, {6, 5}, {6, 6},
			// south-west
			{4, -5}, {5, -6}, {6, -4}, {6, -5}, {6, -6},
			// north-east
			{-4, 5}, {-5, 6}, {-6, 4}, {-6, 5}, {-6, 6},
			// north-west
			{-4, -5}, {-5, -6}, {-6, -4}, {-6, -5}, {-6, -6},
		},
	},
	{
		Name:  "blocks",
		Descr: "three still lifes side by side: block, beehive and loaf",
		Coordinates: []Point{
			// block
			{-1, -8}, {-1, -7},
			{0, -8}, {0, -7},
			// beehive
			{-1, -2}, {-1, -1},
			{0, -3}, {0, 0},
			{1, -2}, {1, -1},
			// loaf
			{-2, 5}, {-2, 6},
			{-1, 4}, {-1, 7},
			{0, 5}, {0, 7},
			{1, 6},
		},
	},
}
