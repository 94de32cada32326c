package sync

import "time"

const (
	RecipeCreated     = "recipe.created"
	RecipeDeleted     = "recipe.deleted"
	StoresInitialized = "stores.initialized"
)

// ChangeEvent tells connected front ends that recipes or stores changed and
// their lists should be reloaded.
type ChangeEvent struct {
	Type     string    `json:"type"`
	RecipeID int64     `json:"recipe_id,omitempty"`
	Name     string    `json:"name,omitempty"`
	Count    int       `json:"count,omitempty"`
	At       time.Time `json:"at"`
}

func NewEvent(typ string) ChangeEvent {
	return ChangeEvent{Type: typ, At: time.Now().UTC()}
}
