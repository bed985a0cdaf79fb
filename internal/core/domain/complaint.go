package domain

// Status represents a complaint's position in the resolution workflow.
// Pending is the initial state; Resolved is terminal.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
)

// ParseStatus validates a status string coming from a request.
// Any valid target is accepted from any source state; there is no
// illegal-transition error in this workflow.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusResolved:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// Category is the fixed classification set for complaints.
type Category string

const (
	CategoryRoad        Category = "Road"
	CategoryWater       Category = "Water"
	CategoryElectricity Category = "Electricity"
	CategoryWaste       Category = "Waste"
	CategoryDrainage    Category = "Drainage"
	CategoryStreetLight Category = "Street Light"
	CategoryOther       Category = "Other"
)

// Categories lists all valid complaint categories.
func Categories() []Category {
	return []Category{
		CategoryRoad,
		CategoryWater,
		CategoryElectricity,
		CategoryWaste,
		CategoryDrainage,
		CategoryStreetLight,
		CategoryOther,
	}
}

// ParseCategory validates a category string coming from a request.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if Category(s) == c {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}
