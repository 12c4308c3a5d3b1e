package response

import "github.com/waxads/easy-grown/internal"

// Ack acknowledges a write. ID is set for inserts only.
type Ack struct {
	Message string `json:"message"`
	ID      *int64 `json:"id,omitempty"`
}

type LoginResult struct {
	Success bool                 `json:"success"`
	User    *internal.PublicUser `json:"user"`
}

// Vegetable is a catalog entry as served to clients. Image and MoreTipsAlt
// repeat image_url and more_tips under the names the web client reads.
type Vegetable struct {
	internal.Vegetable
	Image       string   `json:"image"`
	MoreTipsAlt []string `json:"moreTips"`
}

type Health struct {
	Status string `json:"status"`
}

func Message(msg string) Ack {
	return Ack{Message: msg}
}

func Created(msg string, id int64) Ack {
	return Ack{Message: msg, ID: &id}
}

func LoggedIn(user *internal.PublicUser) LoginResult {
	return LoginResult{Success: true, User: user}
}

func Vegetables(vegs []internal.Vegetable) []Vegetable {
	out := make([]Vegetable, len(vegs))
	for i, v := range vegs {
		out[i] = Vegetable{Vegetable: v, Image: v.ImageURL, MoreTipsAlt: v.MoreTips}
	}
	return out
}

func Failure(status int, msg string) *internal.AppError {
	return internal.NewAppError(status, msg)
}
