package team

// Team is one franchise team from the records API. Rows are owned by the
// team sync and read-only to the live pipeline.
type Team struct {
	ID      int64
	Name    string
	City    string
	Abbrev  string
	Active  bool
	LogoURL string
}
