package finder

type Level string

const (
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Kind string

const (
	KindLocationNotFound Kind = "location_not_found"
	KindFetchFailure     Kind = "fetch_failure"
	KindNoCuisines       Kind = "no_cuisines_found"
)

// Notice is a non-fatal condition the user should be told about.
type Notice struct {
	Kind    Kind   `json:"kind"`
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func locationNotFound() Notice {
	return Notice{Kind: KindLocationNotFound, Level: LevelWarning, Message: "Location not found. Keeping previous location."}
}

func fetchFailure(cause error) Notice {
	return Notice{Kind: KindFetchFailure, Level: LevelError, Message: "Failed to fetch restaurants: " + cause.Error()}
}

func noCuisines() Notice {
	return Notice{Kind: KindNoCuisines, Level: LevelWarning, Message: "No cuisine types found in the current data."}
}
