package sampledata

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// Generator tuning.
const (
	rowsPerAthlete  = 3
	medalPercent    = 15
	nullAgePercent  = 5
	nullBodyPercent = 20
	femalePercent   = 45
)

// Default file names, matching the service defaults.
const (
	DefaultMainFile  = "jjoo.csv"
	DefaultCoordFile = "noc_coordinates.csv"
)

var mainHeader = []string{
	"year", "type", "noc", "name", "gender", "age", "height_cm", "weight_kg",
	"medal", "event", "discipline", "discipline_grouped", "born_date",
}

var coordHeader = []string{"noc", "country", "latitude", "longitude"}

type country struct {
	noc, name string
	lat, lon  float64
}

// countries ends with one NOC that has no coordinates, so maps can be
// checked for dropping it.
var countries = []country{
	{"USA", "United States", 37.09, -95.71},
	{"FRA", "France", 46.23, 2.21},
	{"GER", "Germany", 51.17, 10.45},
	{"GBR", "United Kingdom", 55.38, -3.44},
	{"CHN", "China", 35.86, 104.20},
	{"JPN", "Japan", 36.20, 138.25},
	{"KEN", "Kenya", -0.02, 37.91},
	{"BRA", "Brazil", -14.24, -51.93},
	{"NOR", "Norway", 60.47, 8.47},
	{"AUS", "Australia", -25.27, 133.78},
	{"CAN", "Canada", 56.13, -106.35},
	{"ITA", "Italy", 41.87, 12.57},
	{"EUN", "Unified Team", 0, 0},
}

// nocWithoutCoords is written with empty coordinates.
const nocWithoutCoords = "EUN"

type discipline struct {
	name, group, games string
}

var disciplines = []discipline{
	{"Athletics", "Athletics", "Summer"},
	{"Swimming", "Aquatics", "Summer"},
	{"Diving", "Aquatics", "Summer"},
	{"Fencing", "Fencing", "Summer"},
	{"Rowing", "Rowing", "Summer"},
	{"Artistic Gymnastics", "Gymnastics", "Summer"},
	{"Rhythmic Gymnastics", "Gymnastics", "Summer"},
	{"Cycling Road", "Cycling", "Summer"},
	{"Cycling Track", "Cycling", "Summer"},
	{"Alpine Skiing", "Skiing", "Winter"},
	{"Cross Country Skiing", "Skiing", "Winter"},
	{"Biathlon", "Biathlon", "Winter"},
	{"Figure Skating", "Skating", "Winter"},
	{"Speed Skating", "Skating", "Winter"},
}

var summerYears = []int{1996, 2000, 2004, 2008, 2012, 2016, 2020}

var winterYears = []int{1994, 1998, 2002, 2006, 2010, 2014, 2018, 2022}
