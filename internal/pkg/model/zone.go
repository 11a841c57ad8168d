package model

// Zone is one of the five Norwegian electricity price areas.
type Zone string

func (z Zone) String() string {
	return string(z)
}

const (
	ZoneNO1 Zone = "NO1"
	ZoneNO2 Zone = "NO2"
	ZoneNO3 Zone = "NO3"
	ZoneNO4 Zone = "NO4"
	ZoneNO5 Zone = "NO5"
)

var Zones = []Zone{
	ZoneNO1,
	ZoneNO2,
	ZoneNO3,
	ZoneNO4,
	ZoneNO5,
}

var ZoneLabels = map[Zone]string{
	ZoneNO1: "Østlandet (NO1)",
	ZoneNO2: "Sørlandet (NO2)",
	ZoneNO3: "Midt-Norge (NO3)",
	ZoneNO4: "Nord-Norge (NO4)",
	ZoneNO5: "Vestlandet (NO5)",
}

// ZoneInfo is the response item for the zone listing endpoint.
type ZoneInfo struct {
	Zone  Zone   `json:"zone"`
	Label string `json:"label"`
}
