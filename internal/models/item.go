package models

// Item is a geolocated place pinned on a user's map. The id is assigned by
// the store and is opaque to the API; coordinates default to (0, 0) when the
// address could not be geocoded.
type Item struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Address   string  `json:"address"`
	ImageURL  string  `json:"image_url"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Owner     string  `json:"owner"`
}
