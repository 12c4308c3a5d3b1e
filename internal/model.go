package internal

// RoleUser is assigned to every account created through registration.
const RoleUser = "user"

type Vegetable struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	HarvestTime string   `json:"harvest_time"`
	Water       []string `json:"water"`
	Sunlight    string   `json:"sunlight"`
	Months      string   `json:"months"` // freeform, e.g. "Nov-Feb"
	Regions     []string `json:"regions"`
	ImageURL    string   `json:"image_url"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
	MoreTips    []string `json:"more_tips"`
}

type PlantingLog struct {
	ID                   int64  `json:"id"`
	UserEmail            string `json:"user_email"`
	VegetableID          int64  `json:"vegetable_id"`
	VegetableName        string `json:"vegetable_name"` // copied from the catalog for display
	Status               string `json:"status"`
	PlantedDate          string `json:"planted_date"`
	ExpectedDate         string `json:"expected_date"`
	Location             string `json:"location"`
	Notes                string `json:"notes"`
	WateringIntervalDays int    `json:"watering_interval_days"`
	LastWateredDate      string `json:"last_watered_date"`
}

type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

// PublicUser is the part of a User that may be returned to clients.
type PublicUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
